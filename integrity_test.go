package anonymize

import (
	"strings"
	"testing"
)

func TestIntegritySigner_Sign(t *testing.T) {
	config := &IntegrityConfig{
		SecretKey:        make([]byte, 32),
		HashAlgorithm:    HashAlgorithmSHA256,
		IncludeTimestamp: true,
		IncludeSequence:  true,
		SignaturePrefix:  "[SIG:",
	}

	signer, err := NewIntegritySigner(config)
	if err != nil {
		t.Fatalf("NewIntegritySigner() error = %v", err)
	}

	message := "audit event payload"
	signature := signer.Sign(message)

	if signature == "" {
		t.Error("Sign() returned empty signature")
	}
	if !strings.HasPrefix(signature, "[SIG:") {
		t.Errorf("Sign() signature should start with prefix, got %s", signature)
	}
	if !strings.HasSuffix(signature, "]") {
		t.Errorf("Sign() signature should end with ], got %s", signature)
	}
}

func TestIntegritySigner_Verify(t *testing.T) {
	config := &IntegrityConfig{
		SecretKey:        make([]byte, 32),
		HashAlgorithm:    HashAlgorithmSHA256,
		IncludeTimestamp: false,
		IncludeSequence:  false,
		SignaturePrefix:  "[SIG:",
	}

	signer, err := NewIntegritySigner(config)
	if err != nil {
		t.Fatalf("NewIntegritySigner() error = %v", err)
	}

	message := "audit event payload"
	signature := signer.Sign(message)
	entry := message + signature

	result, err := signer.Verify(entry)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result == nil || !result.Valid {
		t.Fatalf("Verify() should accept its own signature, got %+v", result)
	}
	if result.Message != message {
		t.Errorf("Verify() message = %q, want %q", result.Message, message)
	}
}

func TestIntegritySigner_VerifyNoSignature(t *testing.T) {
	config := &IntegrityConfig{
		SecretKey:       make([]byte, 32),
		SignaturePrefix: "[SIG:",
	}

	signer, err := NewIntegritySigner(config)
	if err != nil {
		t.Fatalf("NewIntegritySigner() error = %v", err)
	}

	result, err := signer.Verify("audit event without signature")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.Valid {
		t.Error("Verify() should return Valid=false for entry without signature")
	}
}

func TestIntegritySigner_GetSequence(t *testing.T) {
	config := &IntegrityConfig{
		SecretKey:       make([]byte, 32),
		IncludeSequence: true,
	}

	signer, err := NewIntegritySigner(config)
	if err != nil {
		t.Fatalf("NewIntegritySigner() error = %v", err)
	}

	if signer.GetSequence() != 0 {
		t.Errorf("initial sequence should be 0, got %d", signer.GetSequence())
	}

	signer.Sign("event 1")
	signer.Sign("event 2")
	if signer.GetSequence() != 2 {
		t.Errorf("sequence should be 2 after two signs, got %d", signer.GetSequence())
	}

	signer.ResetSequence()
	if signer.GetSequence() != 0 {
		t.Errorf("sequence should be 0 after reset, got %d", signer.GetSequence())
	}
}

func TestIntegritySigner_NilSafety(t *testing.T) {
	var signer *IntegritySigner

	if sig := signer.Sign("test"); sig != "" {
		t.Error("nil signer should return empty signature")
	}
	if result, err := signer.Verify("test"); err == nil || result != nil {
		t.Error("nil signer should error and return nil result")
	}
	if signer.GetSequence() != 0 {
		t.Error("nil signer should report 0 sequence")
	}
	if stats := signer.Stats(); stats.Algorithm != "" {
		t.Error("nil signer should return empty stats")
	}
}

func TestNewIntegritySigner_NilConfig(t *testing.T) {
	signer, err := NewIntegritySigner(nil)
	if err != nil {
		t.Fatalf("NewIntegritySigner(nil) error = %v", err)
	}
	if signer == nil {
		t.Fatal("NewIntegritySigner should not return nil")
	}
}

func TestNewIntegritySigner_ShortKey(t *testing.T) {
	_, err := NewIntegritySigner(&IntegrityConfig{SecretKey: make([]byte, 16)})
	if err == nil {
		t.Error("NewIntegritySigner should reject a key shorter than 32 bytes")
	}
}

func TestIntegrityConfig_Clone(t *testing.T) {
	original := &IntegrityConfig{
		SecretKey:        []byte("test-key-32-bytes-long-enough!!"),
		HashAlgorithm:    HashAlgorithmSHA256,
		IncludeTimestamp: true,
		IncludeSequence:  false,
		SignaturePrefix:  "[CUSTOM:",
	}

	cloned := original.Clone()
	if cloned == original {
		t.Error("Clone should return a new instance")
	}
	if string(cloned.SecretKey) != string(original.SecretKey) {
		t.Error("SecretKey should be copied")
	}

	original.SecretKey[0] = 'X'
	if cloned.SecretKey[0] == 'X' {
		t.Error("Clone should not be affected by original mutations")
	}
}

func TestDefaultIntegrityConfig(t *testing.T) {
	config := DefaultIntegrityConfig()

	if len(config.SecretKey) != 32 {
		t.Errorf("default SecretKey length should be 32, got %d", len(config.SecretKey))
	}
	if config.HashAlgorithm != HashAlgorithmSHA256 {
		t.Error("default HashAlgorithm should be SHA256")
	}
	if config.SignaturePrefix != "[SIG:" {
		t.Errorf("default SignaturePrefix should be [SIG:, got %s", config.SignaturePrefix)
	}
}

func TestHashAlgorithm_String(t *testing.T) {
	tests := []struct {
		algorithm HashAlgorithm
		expected  string
	}{
		{HashAlgorithmSHA256, "SHA256"},
		{HashAlgorithm(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.algorithm.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
