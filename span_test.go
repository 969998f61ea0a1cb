package anonymize

import "testing"

func TestSpan_Len(t *testing.T) {
	s := Span{Start: 3, End: 10}
	if s.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.Len())
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"identical", Span{0, 5}, Span{0, 5}, true},
		{"adjacent end-to-start is not overlap", Span{0, 5}, Span{5, 10}, false},
		{"partial overlap", Span{0, 5}, Span{3, 10}, true},
		{"disjoint", Span{0, 5}, Span{6, 10}, false},
		{"one contains the other", Span{0, 10}, Span{2, 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}
