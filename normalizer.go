package anonymize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizationType names one transformation applied by Normalize. The
// list built from these is informational only; it is never fed back into
// detection.
type NormalizationType int

const (
	UnicodeNFC NormalizationType = iota
	WhitespaceCollapse
	Trim
)

func (t NormalizationType) String() string {
	switch t {
	case UnicodeNFC:
		return "UnicodeNfc"
	case WhitespaceCollapse:
		return "WhitespaceCollapse"
	case Trim:
		return "Trim"
	default:
		return "Unknown"
	}
}

// NormalizedText is the canonical input all detectors operate against: a
// string plus the original byte length and the ordered list of
// transformations applied to produce it.
type NormalizedText struct {
	Content                string
	OriginalLen            int
	TransformationsApplied []NormalizationType
}

// Normalize applies, in fixed order: (a) Unicode NFC composition, (b)
// collapse of every maximal run of whitespace into a single ASCII space,
// (c) trim of leading and trailing whitespace. It rejects input whose byte
// length exceeds maxBytes with an *InputTooLargeError.
//
// logger is optional (pass none, or the Anonymizer's own via AuditLogger);
// when set, a rejected oversized input is also recorded as an
// AuditEventInputSanitized on the live audit stream.
func Normalize(text string, maxBytes int, logger ...*AuditLogger) (NormalizedText, error) {
	if len(text) > maxBytes {
		err := &InputTooLargeError{Size: len(text), Max: maxBytes}
		if len(logger) > 0 {
			logger[0].LogInputSanitized("input", err.Error())
		}
		return NormalizedText{}, err
	}

	originalLen := len(text)
	transforms := make([]NormalizationType, 0, 3)

	composed := norm.NFC.String(text)
	transforms = append(transforms, UnicodeNFC)

	collapsed := collapseWhitespace(composed)
	transforms = append(transforms, WhitespaceCollapse)

	trimmed := strings.TrimSpace(collapsed)
	transforms = append(transforms, Trim)

	return NormalizedText{
		Content:                trimmed,
		OriginalLen:            originalLen,
		TransformationsApplied: transforms,
	}, nil
}

// collapseWhitespace replaces every maximal run of Unicode whitespace with
// a single ASCII space, equivalent to splitting on whitespace and joining
// with " ".
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
