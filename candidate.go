package anonymize

// CandidateMatch is a detector's tentative hit before global conflict
// resolution: a span, the producing detector's identifier, its category
// and priority, the validation confidence, the raw substring, and an
// optional normalized form.
type CandidateMatch struct {
	Span            Span
	DetectorID      string
	Category        Category
	Priority        uint32
	Confidence      Confidence
	RawValue        string
	NormalizedValue string
	HasNormalized   bool
}

// Replacement is the record retained after substitution: the span in the
// normalized text, the original substring, the issued placeholder, and the
// category/detector/confidence that produced it.
type Replacement struct {
	Span        Span
	Original    string
	Placeholder string
	Category    Category
	DetectorID  string
	Confidence  Confidence
}
