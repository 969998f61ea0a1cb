package anonymize

import (
	"regexp"
	"strings"

	"github.com/cybergodev/anonymize/internal"
)

// regexDetector is the common shape shared by every built-in detector: one
// or more compiled patterns, matched independently and concatenated, with
// an optional validator and normalizer. It implements Detector.
type regexDetector struct {
	id        string
	category  Category
	priority  uint32
	patterns  []*regexp.Regexp
	validate  func(raw string) ValidationResult
	normalize func(raw string) (string, bool)
}

func (d *regexDetector) ID() string         { return d.id }
func (d *regexDetector) Category() Category { return d.category }
func (d *regexDetector) Priority() uint32   { return d.priority }

func (d *regexDetector) Validate(rawValue string) ValidationResult {
	if d.validate == nil {
		return NotApplicable
	}
	return d.validate(rawValue)
}

func (d *regexDetector) Detect(text string) []CandidateMatch {
	var out []CandidateMatch
	for _, re := range d.patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]

			result := d.Validate(raw)
			var confidence Confidence
			switch result {
			case Invalid:
				continue
			case Valid:
				confidence = Verified
			default:
				confidence = PatternOnly
			}

			m := CandidateMatch{
				Span:       Span{Start: loc[0], End: loc[1]},
				DetectorID: d.id,
				Category:   d.category,
				Priority:   d.priority,
				Confidence: confidence,
				RawValue:   raw,
			}
			if d.normalize != nil {
				if norm, ok := d.normalize(raw); ok {
					m.NormalizedValue = norm
					m.HasNormalized = true
				}
			}
			out = append(out, m)
		}
	}
	return out
}

func keepDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func keepDigitsAndPlus(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c == '+' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func keepAlnumUpper(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

// NewEmailDetector matches `local@domain.tld` addresses. No validator
// applies; every hit is PatternOnly.
func NewEmailDetector() Detector {
	return &regexDetector{
		id:       "email",
		category: CategoryEmail,
		priority: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		},
	}
}

// NewPhoneDetector matches four alternative phone layouts (ES, US, UK,
// E.164). The alternatives overlap by construction (E.164 is a superset
// of the country-specific forms), and the conflict resolver's
// length-descending rule picks the longest hit at any given start offset,
// so no per-detector deduplication is performed here.
func NewPhoneDetector() Detector {
	return &regexDetector{
		id:       "phone",
		category: CategoryPhone,
		priority: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:\+34[-\s]?)?[679][0-9]{2}[-\s]?[0-9]{3}[-\s]?[0-9]{3}`),
			regexp.MustCompile(`(?:\+1[-\s]?)?\(?[0-9]{3}\)?[-\s]?[0-9]{3}[-\s]?[0-9]{4}`),
			regexp.MustCompile(`(?:\+44[-\s]?)?[127][0-9]{3}[-\s]?[0-9]{6}`),
			regexp.MustCompile(`\+[1-9][0-9]{1,14}`),
		},
		normalize: func(raw string) (string, bool) { return keepDigitsAndPlus(raw), true },
	}
}

// NewNationalIDDetector matches the Spanish national ID (8 digits + letter)
// and foreigner ID (X/Y/Z + 7 digits + letter) formats, corroborated by the
// Spanish identifier letter checksum.
func NewNationalIDDetector() Detector {
	return &regexDetector{
		id:       "national_id",
		category: CategoryNationalID,
		priority: 100,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[0-9]{8}[A-Za-z]\b`),
			regexp.MustCompile(`\b[XYZxyz][0-9]{7}[A-Za-z]\b`),
		},
		validate: func(raw string) ValidationResult {
			if ValidateSpanishID(raw) {
				return Valid
			}
			return Invalid
		},
		normalize: func(raw string) (string, bool) { return strings.ToUpper(raw), true },
	}
}

// NewSSNDetector matches the US Social Security Number layout
// `ddd-dd-dddd`. No validator applies; every hit is PatternOnly.
func NewSSNDetector() Detector {
	return &regexDetector{
		id:       "ssn",
		category: CategoryNationalID,
		priority: 80,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[0-9]{3}-[0-9]{2}-[0-9]{4}\b`),
		},
	}
}

// NewIBANDetector matches 2 letters + 2 digits + 15-30 alphanumerics
// (spaces/hyphens tolerated), corroborated by ISO 7064 mod 97-10.
func NewIBANDetector() Detector {
	return &regexDetector{
		id:       "iban",
		category: CategoryIban,
		priority: 100,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Z]{2}[0-9]{2}[A-Z0-9\s-]{15,30}\b`),
		},
		validate: func(raw string) ValidationResult {
			if ValidateIBAN(raw) {
				return Valid
			}
			return Invalid
		},
		normalize: func(raw string) (string, bool) { return keepAlnumUpper(raw), true },
	}
}

// NewCreditCardDetector matches 13-19 digit card numbers laid out as
// 4-4-4-(1-7) with optional hyphen/space separators, corroborated by Luhn.
func NewCreditCardDetector() Detector {
	return &regexDetector{
		id:       "credit_card",
		category: CategoryCreditCard,
		priority: 90,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[0-9]{4}[-\s]?[0-9]{4}[-\s]?[0-9]{4}[-\s]?[0-9]{1,7}\b`),
		},
		validate: func(raw string) ValidationResult {
			if ValidateLuhn(raw) {
				return Valid
			}
			return Invalid
		},
		normalize: func(raw string) (string, bool) { return keepDigits(raw), true },
	}
}

// NewProjectCodeDetector matches `(PRJ|PROY|P)-dddd(-ddd(d)?)?`. No
// validator applies.
func NewProjectCodeDetector() Detector {
	return &regexDetector{
		id:       "project_code",
		category: CategoryProjectCode,
		priority: 70,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:PRJ|PROY|P)-[0-9]{4}(?:-[0-9]{3,4})?\b`),
		},
	}
}

// NewContractNumberDetector matches `(CTR|CONT|CONTRACT)-dddd-dddd..dddddddd`.
// No validator applies.
func NewContractNumberDetector() Detector {
	return &regexDetector{
		id:       "contract_number",
		category: CategoryContractNumber,
		priority: 70,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:CTR|CONT|CONTRACT)-[0-9]{4}-[0-9]{4,8}\b`),
		},
	}
}

// NewWorkOrderDetector matches `(WO|OT|OdT)-dddd..dddddddddd`. No
// validator applies.
func NewWorkOrderDetector() Detector {
	return &regexDetector{
		id:       "work_order",
		category: CategoryWorkOrder,
		priority: 70,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:WO|OT|OdT)-[0-9]{4,10}\b`),
		},
	}
}

// NewPurchaseOrderDetector matches `(PO|OC|PC)-dddddd..dddddddddddd`. No
// validator applies.
func NewPurchaseOrderDetector() Detector {
	return &regexDetector{
		id:       "purchase_order",
		category: CategoryPurchaseOrder,
		priority: 70,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:PO|OC|PC)-[0-9]{6,12}\b`),
		},
	}
}

// NewSerialNumberDetector matches `SN[A-Z]{2}-dddddddd`. No validator
// applies.
func NewSerialNumberDetector() Detector {
	return &regexDetector{
		id:       "serial_number",
		category: CategorySerialNumber,
		priority: 60,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bSN[A-Z]{2}-[0-9]{8}\b`),
		},
	}
}

// NewCostCenterDetector matches `CC-dddd..dddddddd`. No validator applies.
func NewCostCenterDetector() Detector {
	return &regexDetector{
		id:       "cost_center",
		category: CategoryCostCenter,
		priority: 60,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bCC-[0-9]{4,8}\b`),
		},
	}
}

// NewPatternDetector builds a host-supplied custom detector from a regular
// expression. The pattern is compiled and run through the ReDoS guard
// (HasNestedQuantifiers, bounded by MaxQuantifierRange) at construction
// time; a pattern longer than MaxPatternLength, one that fails to compile,
// or one the guard rejects never reaches Detect, and NewPatternDetector
// returns an *InvalidPatternError instead of a Detector. No validator
// applies; every hit is PatternOnly.
//
// logger is optional (pass none, or the Anonymizer's own via AuditLogger);
// when set, a pattern rejected by the ReDoS guard is also recorded as an
// AuditEventReDoSAttempt on the live audit stream.
func NewPatternDetector(id string, category Category, pattern string, priority uint32, logger ...*AuditLogger) (Detector, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if len(pattern) > MaxPatternLength {
		return nil, &InvalidPatternError{Detector: id, Message: "pattern exceeds maximum length"}
	}
	if internal.HasNestedQuantifiers(pattern, MaxQuantifierRange) {
		const message = "pattern rejected by ReDoS guard"
		if len(logger) > 0 {
			logger[0].LogReDoSAttempt(id, message)
		}
		return nil, &InvalidPatternError{Detector: id, Message: message}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Detector: id, Message: err.Error()}
	}

	return &regexDetector{
		id:       id,
		category: category,
		priority: priority,
		patterns: []*regexp.Regexp{re},
	}, nil
}

// BuiltinDetectors returns one fresh instance of every detector listed in
// the package documentation's detector table, in that order. Each call
// returns independent instances; the returned detectors hold only
// compiled, immutable state and are safe to share across concurrent
// Anonymize calls.
func BuiltinDetectors() []Detector {
	return []Detector{
		NewEmailDetector(),
		NewPhoneDetector(),
		NewNationalIDDetector(),
		NewSSNDetector(),
		NewIBANDetector(),
		NewCreditCardDetector(),
		NewProjectCodeDetector(),
		NewContractNumberDetector(),
		NewWorkOrderDetector(),
		NewPurchaseOrderDetector(),
		NewSerialNumberDetector(),
		NewCostCenterDetector(),
	}
}
