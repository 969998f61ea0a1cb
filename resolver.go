package anonymize

import "sort"

// ResolveConflicts consumes the union of every detector's candidates and
// returns the maximal non-overlapping subsequence under a fixed
// deterministic order: start ascending, length descending, priority
// descending, detector ID ascending as the final tiebreak.
//
// Sorting length-descending at a given start implements "prefer the
// longest match" (a ten-digit phone number beats a three-digit substring
// starting at the same offset); priority breaks ties across detectors
// with equal start and length; the ID tiebreak guarantees reproducibility
// regardless of detector registration order.
func ResolveConflicts(candidates []CandidateMatch) (accepted []CandidateMatch, conflictsResolved int) {
	sorted := make([]CandidateMatch, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		lenA, lenB := a.Span.Len(), b.Span.Len()
		if lenA != lenB {
			return lenA > lenB
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.DetectorID < b.DetectorID
	})

	accepted = make([]CandidateMatch, 0, len(sorted))
	lastEnd := 0
	for _, c := range sorted {
		// Half-open spans: equal boundaries are adjacency, not overlap.
		if c.Span.Start >= lastEnd {
			accepted = append(accepted, c)
			lastEnd = c.Span.End
		}
	}

	conflictsResolved = len(candidates) - len(accepted)
	return accepted, conflictsResolved
}
