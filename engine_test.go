package anonymize

import (
	"strings"
	"testing"
)

func newTestAnonymizer(t *testing.T) *Anonymizer {
	t.Helper()
	az, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return az
}

func TestAnonymize_Email(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("Contact: jane.doe@example.com")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if out.Text != "Contact: [EMAIL_1]" {
		t.Errorf("Text = %q", out.Text)
	}
	if out.Report.Statistics.TotalMatches != 1 {
		t.Errorf("TotalMatches = %d, want 1", out.Report.Statistics.TotalMatches)
	}
}

func TestAnonymize_NationalIDBothVerified(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("DNI 12345678Z and 00000000T")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if !strings.Contains(out.Text, "[NATIONAL_ID_1]") || !strings.Contains(out.Text, "[NATIONAL_ID_2]") {
		t.Errorf("Text = %q, want both national IDs replaced", out.Text)
	}
	for _, r := range out.Report.Replacements {
		if r.Confidence != "Verified" {
			t.Errorf("replacement %+v not Verified", r)
		}
	}
}

func TestAnonymize_InvalidChecksumNotReplaced(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("DNI 12345678A on file")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if out.Text != "DNI 12345678A on file" {
		t.Errorf("Text = %q, want national ID with a failing checksum left in place", out.Text)
	}
	if out.Report.Statistics.TotalMatches != 0 {
		t.Errorf("TotalMatches = %d, want 0", out.Report.Statistics.TotalMatches)
	}
}

func TestAnonymize_IBANVerified(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("IBAN GB82 WEST 1234 5698 7654 32")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if !strings.Contains(out.Text, "[IBAN_1]") {
		t.Errorf("Text = %q", out.Text)
	}
	if out.Report.Replacements[0].Confidence != "Verified" {
		t.Errorf("confidence = %s, want Verified", out.Report.Replacements[0].Confidence)
	}
}

func TestAnonymize_CreditCardVerified(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("Card 4539 1488 0343 6467 ok")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if !strings.Contains(out.Text, "[CREDIT_CARD_1]") {
		t.Errorf("Text = %q", out.Text)
	}
	if out.Report.Replacements[0].Confidence != "Verified" {
		t.Errorf("confidence = %s, want Verified", out.Report.Replacements[0].Confidence)
	}
}

func TestAnonymize_PerCategoryIndependentNumbering(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("Mix a@b.co 600111222 a@b.co")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if out.Report.Statistics.TotalMatches != 3 {
		t.Fatalf("TotalMatches = %d, want 3", out.Report.Statistics.TotalMatches)
	}
	if !strings.Contains(out.Text, "[EMAIL_1]") || !strings.Contains(out.Text, "[EMAIL_2]") {
		t.Errorf("Text = %q, want independently numbered emails", out.Text)
	}
	if !strings.Contains(out.Text, "[PHONE_1]") {
		t.Errorf("Text = %q, want a phone replacement", out.Text)
	}
}

func TestAnonymize_HashesAreDeterministic(t *testing.T) {
	az := newTestAnonymizer(t)
	out1, err := az.Anonymize("Contact: jane.doe@example.com")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	out2, err := az.Anonymize("Contact: jane.doe@example.com")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if out1.Hash != out2.Hash {
		t.Errorf("hash not deterministic: %q vs %q", out1.Hash, out2.Hash)
	}
	if out1.Report.InputHash != out2.Report.InputHash {
		t.Errorf("input hash not deterministic")
	}
	if len(out1.Hash) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(out1.Hash))
	}
}

func TestAnonymize_NoMatchesLeavesTextUnchanged(t *testing.T) {
	az := newTestAnonymizer(t)
	out, err := az.Anonymize("nothing sensitive here")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if out.Text != "nothing sensitive here" {
		t.Errorf("Text = %q", out.Text)
	}
	if out.Report.Statistics.TotalMatches != 0 {
		t.Errorf("TotalMatches = %d, want 0", out.Report.Statistics.TotalMatches)
	}
}

func TestAnonymize_RejectsOversizedInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInputBytes = 8
	az, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = az.Anonymize("this input is far too long")
	if err == nil {
		t.Fatal("expected an error for oversized input")
	}
	var tooLarge *InputTooLargeError
	if e, ok := err.(*InputTooLargeError); ok {
		tooLarge = e
	}
	if tooLarge == nil {
		t.Errorf("err = %v, want *InputTooLargeError", err)
	}
}

func TestNew_RejectsNilConfig(t *testing.T) {
	if _, err := New(nil); err != ErrNilConfig {
		t.Errorf("err = %v, want ErrNilConfig", err)
	}
}

func TestAnonymize_NoDetectorsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detectors = []string{"does_not_exist"}
	az, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := az.Anonymize("anything"); err != ErrNoDetectors {
		t.Errorf("err = %v, want ErrNoDetectors", err)
	}
}

func TestAnonymize_SelectedDetectorsSubset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detectors = []string{"email"}
	az, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := az.Anonymize("Call 600111222 or email a@b.co")
	if err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}
	if out.Report.Statistics.TotalMatches != 1 {
		t.Errorf("TotalMatches = %d, want 1 (only email detector registered)", out.Report.Statistics.TotalMatches)
	}
}

func TestAnonymize_AuditLoggerReceivesRedactionEvents(t *testing.T) {
	al := NewAuditLogger(&AuditConfig{Enabled: true, BufferSize: 10, MinimumSeverity: AuditSeverityInfo})
	defer al.Close()

	cfg := DefaultConfig()
	cfg.AuditLogger = al
	az, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := az.Anonymize("Contact: jane.doe@example.com"); err != nil {
		t.Fatalf("Anonymize() error = %v", err)
	}

	stats := al.Stats()
	if stats.TotalEvents != 1 {
		t.Errorf("TotalEvents = %d, want 1", stats.TotalEvents)
	}
}
