package anonymize

import "time"

// AuditReport is the side-channel record describing what Anonymize
// redacted and why. Its JSON shape is a stable external contract: field
// names and nesting must not change without a version bump.
type AuditReport struct {
	Version      string             `json:"version"`
	Timestamp    time.Time          `json:"timestamp"`
	InputHash    string             `json:"input_hash"`
	ConfigHash   string             `json:"config_hash"`
	Statistics   Statistics         `json:"statistics"`
	Replacements []ReplacementRecord `json:"replacements"`
}

// Statistics summarizes a single Anonymize run.
type Statistics struct {
	TotalMatches      int            `json:"total_matches"`
	MatchesByCategory map[string]int `json:"matches_by_category"`
	ConflictsResolved int            `json:"conflicts_resolved"`
	ProcessingTimeMs  uint64         `json:"processing_time_ms"`
}

// ReplacementRecord is the JSON-serializable form of a Replacement,
// carrying enough information for a caller to reconstruct the normalized
// input by splicing OriginalValue back into OriginalSpan, right-to-left,
// across the whole list.
type ReplacementRecord struct {
	Placeholder   string  `json:"placeholder"`
	Category      string  `json:"category"`
	DetectorID    string  `json:"detector_id"`
	Confidence    string  `json:"confidence"`
	OriginalSpan  Span    `json:"original_span"`
	OriginalValue *string `json:"original_value"`
}
