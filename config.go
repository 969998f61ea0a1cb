package anonymize

// Config collects the host-tunable knobs for an Anonymizer: the normalizer's
// input size ceiling, which built-in detectors to register, and the
// optional audit collaborators. A nil *Config passed to New is rejected
// with ErrNilConfig; use DefaultConfig to get a populated one.
type Config struct {
	// MaxInputBytes bounds the byte length Normalize accepts before
	// Anonymize returns an *InputTooLargeError.
	MaxInputBytes int
	// Detectors lists the built-in detectors to register, identified by
	// the Detector.ID() each constructor returns (e.g. "email", "iban").
	// A nil slice registers every detector from BuiltinDetectors.
	Detectors []string
	// ConfigHash is stamped into every AuditReport's ConfigHash field, so a
	// consumer can tell which detector set produced a given report.
	ConfigHash string
	// AuditLogger, if set, receives a live AuditEventSensitiveDataRedacted
	// event for every replacement Anonymize makes. This is independent of
	// the AuditReport returned by Anonymize.
	AuditLogger *AuditLogger
}

// DefaultConfig returns a Config with every built-in detector registered,
// the default input size ceiling, and no audit logger attached.
func DefaultConfig() *Config {
	return &Config{
		MaxInputBytes: DefaultMaxInputBytes,
		Detectors:     nil,
		ConfigHash:    DefaultConfigHash,
		AuditLogger:   nil,
	}
}

// Clone creates a shallow copy of the configuration. Detectors is copied;
// AuditLogger is shared, not cloned, since it owns a running goroutine.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		MaxInputBytes: c.MaxInputBytes,
		ConfigHash:    c.ConfigHash,
		AuditLogger:   c.AuditLogger,
	}
	if c.Detectors != nil {
		clone.Detectors = make([]string, len(c.Detectors))
		copy(clone.Detectors, c.Detectors)
	}
	return clone
}

// Validate checks the configuration for host misconfiguration.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.MaxInputBytes <= 0 {
		return &ConfigError{Message: "MaxInputBytes must be positive"}
	}
	return nil
}

// selectedDetectors resolves Config.Detectors against BuiltinDetectors: nil
// or empty selects everything, otherwise only the named IDs are kept, in
// BuiltinDetectors' table order.
func (c *Config) selectedDetectors() []Detector {
	all := BuiltinDetectors()
	if len(c.Detectors) == 0 {
		return all
	}

	wanted := make(map[string]bool, len(c.Detectors))
	for _, id := range c.Detectors {
		wanted[id] = true
	}

	selected := make([]Detector, 0, len(c.Detectors))
	for _, d := range all {
		if wanted[d.ID()] {
			selected = append(selected, d)
		}
	}
	return selected
}
