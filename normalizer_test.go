package anonymize

import "testing"

func TestNormalize_CollapsesWhitespaceAndTrims(t *testing.T) {
	got, err := Normalize("  hello    world  \t\n", 1000)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.Content != "hello world" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.TransformationsApplied) != 3 {
		t.Errorf("TransformationsApplied = %v", got.TransformationsApplied)
	}
}

func TestNormalize_ComposesUnicodeNFC(t *testing.T) {
	// "e" + combining acute accent (U+0065 U+0301) should compose to U+00E9.
	decomposed := "école"
	got, err := Normalize(decomposed, 1000)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := "école"
	if got.Content != want {
		t.Errorf("Content = %q, want %q", got.Content, want)
	}
}

func TestNormalize_RejectsOversizedInput(t *testing.T) {
	_, err := Normalize("0123456789", 5)
	if err == nil {
		t.Fatal("expected an error")
	}
	tooLarge, ok := err.(*InputTooLargeError)
	if !ok {
		t.Fatalf("err = %T, want *InputTooLargeError", err)
	}
	if tooLarge.Size != 10 || tooLarge.Max != 5 {
		t.Errorf("tooLarge = %+v", tooLarge)
	}
}

func TestNormalize_RecordsOriginalLength(t *testing.T) {
	got, err := Normalize("hello", 1000)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.OriginalLen != 5 {
		t.Errorf("OriginalLen = %d, want 5", got.OriginalLen)
	}
}
