// Package anonymize provides a deterministic, rule-based engine for
// detecting and redacting sensitive data in free-form text.
//
// anonymize is designed for pipelines that need reproducible redaction with
// an auditable trail: given the same input and configuration, it always
// finds the same matches, resolves the same conflicts, and issues the same
// placeholders. It recognizes emails, phone numbers, national identifiers,
// credit cards, IBANs, and a set of organizational reference numbers out of
// the box, and accepts host-defined detectors for anything else.
//
// # Quick Start
//
//	package main
//
//	import "github.com/cybergodev/anonymize"
//
//	func main() {
//	    az, _ := anonymize.New(anonymize.DefaultConfig())
//	    defer az.Close()
//
//	    out, _ := az.Anonymize("Contact: jane.doe@example.com")
//	    fmt.Println(out.Text)   // "Contact: [EMAIL_1]"
//	    fmt.Println(out.Report) // *AuditReport describing the replacement
//	}
//
// # Pipeline
//
// Anonymize runs five stages in order:
//
//  1. Normalize: Unicode NFC composition, whitespace collapse, trim.
//  2. Detect: every registered Detector runs independently over the
//     normalized text and returns candidate matches.
//  3. Resolve: overlapping candidates are reduced to a maximal
//     non-overlapping set by start offset, then length, then priority,
//     then detector ID.
//  4. Replace: each surviving match is substituted with a
//     `[CATEGORY_N]` placeholder, numbered per category in order of
//     appearance.
//  5. Report: a SHA-256 hash of the input and output, plus per-category
//     statistics, is assembled into an AuditReport.
//
// # Configuration
//
//	cfg := anonymize.DefaultConfig()
//	cfg.MaxInputBytes = 10 * 1024 * 1024
//	cfg.Detectors = []string{"email", "iban", "credit_card"}
//	az, _ := anonymize.New(cfg)
//
// # Custom Detectors
//
// A host can register its own pattern-based detector, subject to a ReDoS
// guard applied at construction time. Passing az.AuditLogger() records a
// rejected pattern on the live audit stream as well:
//
//	d, err := anonymize.NewPatternDetector("badge_id", anonymize.CategoryCustom("BADGE"), `\bB-[0-9]{6}\b`, 60, az.AuditLogger())
//	if err != nil {
//	    // pattern rejected: too long, fails to compile, or trips the guard
//	}
//	az.AddDetector(d)
//
// # Live Audit Stream
//
// AuditReport is the authoritative, synchronous record of one Anonymize
// call. A host that also wants to observe redaction activity as it happens
// (for a monitoring dashboard, say) can attach an AuditLogger:
//
//	cfg := anonymize.DefaultConfig()
//	cfg.AuditLogger = anonymize.NewAuditLogger(anonymize.DefaultAuditConfig())
//	az, _ := anonymize.New(cfg)
//
// # Thread Safety
//
// An Anonymizer is safe for concurrent use once constructed: detectors are
// read-only after registration, and the pipeline holds no mutable shared
// state across calls. AddDetector is not safe to call concurrently with
// Anonymize.
//
// # Graceful Shutdown
//
// Call Close to stop the attached AuditLogger's background goroutine:
//
//	az.Close()
package anonymize
