package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Output is the result of a single Anonymize call: the anonymized text, the
// audit report describing what changed, and the lowercase hex SHA-256 of
// the anonymized output bytes (the report separately carries the hash of
// the raw input).
type Output struct {
	Text   string
	Report *AuditReport
	Hash   string
}

// Anonymizer is the engine facade: an immutable, ordered collection of
// detectors plus the configuration needed to normalize input and assemble
// an AuditReport. Once constructed (and after any AddDetector calls finish
// before the first Anonymize call), it is safe to share across goroutines;
// concurrent Anonymize calls share detectors as readers only.
type Anonymizer struct {
	config    *Config
	detectors []Detector
}

// New builds an Anonymizer from cfg. A nil cfg is rejected with
// ErrNilConfig; an invalid cfg is rejected with the error Config.Validate
// returns.
func New(cfg *Config) (*Anonymizer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Anonymizer{
		config:    cfg,
		detectors: cfg.selectedDetectors(),
	}, nil
}

// AddDetector appends a detector to the engine's ordered collection. Not
// safe to call concurrently with Anonymize or another AddDetector.
func (a *Anonymizer) AddDetector(d Detector) {
	a.detectors = append(a.detectors, d)
}

// AuditLogger returns the engine's attached audit logger, or nil if none
// was configured. A host constructing a custom NewPatternDetector can pass
// this along so a rejected pattern is also recorded on the live audit
// stream.
func (a *Anonymizer) AuditLogger() *AuditLogger {
	return a.config.AuditLogger
}

// Anonymize runs the full pipeline against raw: normalize, detect,
// resolve conflicts, replace, then hash and report.
func (a *Anonymizer) Anonymize(raw string) (Output, error) {
	start := time.Now()

	if len(a.detectors) == 0 {
		return Output{}, ErrNoDetectors
	}

	normalized, err := Normalize(raw, a.config.MaxInputBytes, a.config.AuditLogger)
	if err != nil {
		return Output{}, err
	}

	var candidates []CandidateMatch
	for _, d := range a.detectors {
		candidates = append(candidates, d.Detect(normalized.Content)...)
	}

	resolved, conflictsResolved := ResolveConflicts(candidates)

	result := Replace(normalized.Content, resolved)
	elapsed := time.Since(start)

	if a.config.AuditLogger != nil {
		for _, r := range result.Replacements {
			a.config.AuditLogger.LogRedaction(r)
		}
	}

	inputHash := sha256Hex(raw)
	outputHash := sha256Hex(result.AnonymizedText)

	report := buildReport(a.config.ConfigHash, inputHash, conflictsResolved, elapsed, result.Replacements)

	return Output{
		Text:   result.AnonymizedText,
		Report: report,
		Hash:   outputHash,
	}, nil
}

// Close stops the engine's attached AuditLogger, if any.
func (a *Anonymizer) Close() error {
	if a.config.AuditLogger != nil {
		return a.config.AuditLogger.Close()
	}
	return nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func buildReport(configHash string, inputHash string, conflictsResolved int, elapsed time.Duration, replacements []Replacement) *AuditReport {
	if configHash == "" {
		configHash = DefaultConfigHash
	}

	byCategory := make(map[string]int, len(replacements))
	records := make([]ReplacementRecord, len(replacements))
	for i, r := range replacements {
		byCategory[r.Category.DebugName()]++

		original := r.Original
		records[i] = ReplacementRecord{
			Placeholder:   r.Placeholder,
			Category:      r.Category.DebugName(),
			DetectorID:    r.DetectorID,
			Confidence:    r.Confidence.String(),
			OriginalSpan:  r.Span,
			OriginalValue: &original,
		}
	}

	return &AuditReport{
		Version:    ReportVersion,
		Timestamp:  time.Now().UTC(),
		InputHash:  inputHash,
		ConfigHash: configHash,
		Statistics: Statistics{
			TotalMatches:      len(replacements),
			MatchesByCategory: byCategory,
			ConflictsResolved: conflictsResolved,
			ProcessingTimeMs:  uint64(elapsed.Milliseconds()),
		},
		Replacements: records,
	}
}
