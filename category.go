package anonymize

import "strings"

// Category tags the semantic class of a match. It is a closed set of
// built-in variants plus a Custom variant carrying a host-supplied name,
// mirroring a tagged-variant enum: exhaustive handling of the built-ins is
// enforced by the switch in Stem/DebugName, while Custom admits host
// extension.
type Category struct {
	kind   categoryKind
	custom string
}

type categoryKind int

const (
	categoryEmail categoryKind = iota
	categoryPhone
	categoryIban
	categoryNationalID
	categoryCreditCard
	categoryProjectCode
	categoryContractNumber
	categoryWorkOrder
	categoryPurchaseOrder
	categorySerialNumber
	categoryCostCenter
	categoryCompanyName
	categoryProjectName
	categoryPersonnelName
	categoryClientName
	categoryDocumentNumber
	categoryRevisedBy
	categoryApprovedBy
	categoryDesignedBy
	categoryCustom
)

var (
	CategoryEmail          = Category{kind: categoryEmail}
	CategoryPhone          = Category{kind: categoryPhone}
	CategoryIban           = Category{kind: categoryIban}
	CategoryNationalID     = Category{kind: categoryNationalID}
	CategoryCreditCard     = Category{kind: categoryCreditCard}
	CategoryProjectCode    = Category{kind: categoryProjectCode}
	CategoryContractNumber = Category{kind: categoryContractNumber}
	CategoryWorkOrder      = Category{kind: categoryWorkOrder}
	CategoryPurchaseOrder  = Category{kind: categoryPurchaseOrder}
	CategorySerialNumber   = Category{kind: categorySerialNumber}
	CategoryCostCenter     = Category{kind: categoryCostCenter}
	CategoryCompanyName    = Category{kind: categoryCompanyName}
	CategoryProjectName    = Category{kind: categoryProjectName}
	CategoryPersonnelName  = Category{kind: categoryPersonnelName}
	CategoryClientName     = Category{kind: categoryClientName}
	CategoryDocumentNumber = Category{kind: categoryDocumentNumber}
	CategoryRevisedBy      = Category{kind: categoryRevisedBy}
	CategoryApprovedBy     = Category{kind: categoryApprovedBy}
	CategoryDesignedBy     = Category{kind: categoryDesignedBy}
)

// CategoryCustom builds a host-defined category. The payload is uppercased
// both for the placeholder stem and the debug name.
func CategoryCustom(name string) Category {
	return Category{kind: categoryCustom, custom: name}
}

// Stem returns the canonical upper-snake-case placeholder stem used to
// build `[<STEM>_<N>]` placeholders.
func (c Category) Stem() string {
	switch c.kind {
	case categoryEmail:
		return "EMAIL"
	case categoryPhone:
		return "PHONE"
	case categoryIban:
		return "IBAN"
	case categoryNationalID:
		return "NATIONAL_ID"
	case categoryCreditCard:
		return "CREDIT_CARD"
	case categoryProjectCode:
		return "PROJECT_CODE"
	case categoryContractNumber:
		return "CONTRACT_NUMBER"
	case categoryWorkOrder:
		return "WORK_ORDER"
	case categoryPurchaseOrder:
		return "PURCHASE_ORDER"
	case categorySerialNumber:
		return "SERIAL_NUMBER"
	case categoryCostCenter:
		return "COST_CENTER"
	case categoryCompanyName:
		return "COMPANY_NAME"
	case categoryProjectName:
		return "PROJECT_NAME"
	case categoryPersonnelName:
		return "PERSONNEL_NAME"
	case categoryClientName:
		return "CLIENT_NAME"
	case categoryDocumentNumber:
		return "DOCUMENT_NUMBER"
	case categoryRevisedBy:
		return "REVISED_BY"
	case categoryApprovedBy:
		return "APPROVED_BY"
	case categoryDesignedBy:
		return "DESIGNED_BY"
	case categoryCustom:
		return strings.ToUpper(c.custom)
	default:
		return "UNKNOWN"
	}
}

// DebugName renders the category in its source tag form, as used by the
// audit report's category field (e.g. "Email", `Custom("X")`).
func (c Category) DebugName() string {
	switch c.kind {
	case categoryEmail:
		return "Email"
	case categoryPhone:
		return "Phone"
	case categoryIban:
		return "Iban"
	case categoryNationalID:
		return "NationalId"
	case categoryCreditCard:
		return "CreditCard"
	case categoryProjectCode:
		return "ProjectCode"
	case categoryContractNumber:
		return "ContractNumber"
	case categoryWorkOrder:
		return "WorkOrder"
	case categoryPurchaseOrder:
		return "PurchaseOrder"
	case categorySerialNumber:
		return "SerialNumber"
	case categoryCostCenter:
		return "CostCenter"
	case categoryCompanyName:
		return "CompanyName"
	case categoryProjectName:
		return "ProjectName"
	case categoryPersonnelName:
		return "PersonnelName"
	case categoryClientName:
		return "ClientName"
	case categoryDocumentNumber:
		return "DocumentNumber"
	case categoryRevisedBy:
		return "RevisedBy"
	case categoryApprovedBy:
		return "ApprovedBy"
	case categoryDesignedBy:
		return "DesignedBy"
	case categoryCustom:
		return `Custom("` + strings.ToUpper(c.custom) + `")`
	default:
		return "Unknown"
	}
}

func (c Category) String() string { return c.DebugName() }

// Equal reports whether two categories are the same variant (and, for
// Custom, the same uppercased payload).
func (c Category) Equal(o Category) bool {
	if c.kind != o.kind {
		return false
	}
	if c.kind == categoryCustom {
		return strings.EqualFold(c.custom, o.custom)
	}
	return true
}
