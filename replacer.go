package anonymize

import (
	"fmt"
	"sort"
	"strings"
)

// ReplacementResult is the output of the replacement stage: the anonymized
// text and the Replacement records describing what was substituted, in
// left-to-right order of appearance.
type ReplacementResult struct {
	AnonymizedText string
	Replacements   []Replacement
}

// Replace assigns each resolved, non-overlapping match a categorized,
// sequentially numbered placeholder and substitutes it into text.
//
// Go strings are immutable, so this streams segments between spans into a
// fresh builder in a single left-to-right pass rather than splicing the
// string in place right-to-left; the result is byte-identical to applying
// the substitutions right-to-left on a mutable buffer, since every span
// still addresses the same offsets into the original text regardless of
// which direction assembly proceeds.
func Replace(text string, matches []CandidateMatch) ReplacementResult {
	sorted := make([]CandidateMatch, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	counters := make(map[Category]int, len(sorted))
	replacements := make([]Replacement, len(sorted))
	placeholders := make([]string, len(sorted))

	for i, m := range sorted {
		counters[m.Category]++
		placeholder := fmt.Sprintf("[%s_%d]", m.Category.Stem(), counters[m.Category])
		placeholders[i] = placeholder
		replacements[i] = Replacement{
			Span:        m.Span,
			Original:    m.RawValue,
			Placeholder: placeholder,
			Category:    m.Category,
			DetectorID:  m.DetectorID,
			Confidence:  m.Confidence,
		}
	}

	var out strings.Builder
	out.Grow(len(text))
	cursor := 0
	for i, m := range sorted {
		out.WriteString(text[cursor:m.Span.Start])
		out.WriteString(placeholders[i])
		cursor = m.Span.End
	}
	out.WriteString(text[cursor:])

	return ReplacementResult{
		AnonymizedText: out.String(),
		Replacements:   replacements,
	}
}
