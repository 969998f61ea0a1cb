package anonymize

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cybergodev/anonymize/internal"
)

// AuditEventType represents the type of live audit event emitted by an
// AuditLogger. This is distinct from AuditReport: AuditReport is the
// synchronous, authoritative record of one Anonymize call, while
// AuditEventType values stream out of the engine best-effort, for a host
// that wants to watch redaction activity as it happens (a monitoring
// dashboard, a websocket subscriber).
type AuditEventType int

const (
	// AuditEventSensitiveDataRedacted is emitted once per resolved match
	// substituted by Anonymize.
	AuditEventSensitiveDataRedacted AuditEventType = iota
	// AuditEventRateLimitExceeded is emitted when the optional HTTP facade's
	// rate limiter rejects a request.
	AuditEventRateLimitExceeded
	// AuditEventReDoSAttempt is emitted when NewPatternDetector's ReDoS
	// guard rejects a host-supplied pattern.
	AuditEventReDoSAttempt
	// AuditEventSecurityViolation is emitted for general security violations
	// not covered by a more specific type.
	AuditEventSecurityViolation
	// AuditEventIntegrityViolation is emitted when an audit log entry fails
	// signature verification.
	AuditEventIntegrityViolation
	// AuditEventInputSanitized is emitted when Normalize rejects an
	// oversized input.
	AuditEventInputSanitized
)

// String returns the string representation of the audit event type.
func (e AuditEventType) String() string {
	switch e {
	case AuditEventSensitiveDataRedacted:
		return "SENSITIVE_DATA_REDACTED"
	case AuditEventRateLimitExceeded:
		return "RATE_LIMIT_EXCEEDED"
	case AuditEventReDoSAttempt:
		return "REDOS_ATTEMPT"
	case AuditEventSecurityViolation:
		return "SECURITY_VIOLATION"
	case AuditEventIntegrityViolation:
		return "INTEGRITY_VIOLATION"
	case AuditEventInputSanitized:
		return "INPUT_SANITIZED"
	default:
		return "UNKNOWN"
	}
}

// AuditEvent is one entry on the live audit stream.
type AuditEvent struct {
	// Type is the type of audit event.
	Type AuditEventType `json:"type"`
	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
	// Message is a human-readable description of the event.
	Message string `json:"message"`
	// Category is the redaction category involved, if any (e.g. "Email").
	Category string `json:"category,omitempty"`
	// DetectorID is the detector that produced the event, if any.
	DetectorID string `json:"detector_id,omitempty"`
	// Metadata contains additional context about the event.
	Metadata map[string]any `json:"metadata,omitempty"`
	// Severity indicates the severity level of the event.
	Severity AuditSeverity `json:"severity"`
}

// AuditSeverity represents the severity level of an audit event.
type AuditSeverity int

const (
	// AuditSeverityInfo is for informational events.
	AuditSeverityInfo AuditSeverity = iota
	// AuditSeverityWarning is for warning events.
	AuditSeverityWarning
	// AuditSeverityError is for error events.
	AuditSeverityError
	// AuditSeverityCritical is for critical security events.
	AuditSeverityCritical
)

// String returns the string representation of the audit severity.
func (s AuditSeverity) String() string {
	switch s {
	case AuditSeverityInfo:
		return "INFO"
	case AuditSeverityWarning:
		return "WARNING"
	case AuditSeverityError:
		return "ERROR"
	case AuditSeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler for AuditSeverity.
func (s AuditSeverity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// AuditConfig configures the live AuditLogger.
type AuditConfig struct {
	// Enabled determines if the live audit stream runs at all.
	Enabled bool
	// Output is the destination for audit logs. If nil, events are still
	// counted in Stats but nothing is written.
	Output *os.File
	// BufferSize is the size of the async event buffer.
	BufferSize int
	// IncludeTimestamp determines if timestamps are included in
	// non-JSON-formatted output.
	IncludeTimestamp bool
	// JSONFormat determines if output should be JSON formatted.
	JSONFormat bool
	// MinimumSeverity is the minimum severity level to log.
	MinimumSeverity AuditSeverity
	// IntegritySigner, when set, signs each written line so tampering with
	// the audit log after the fact can be detected with VerifyAuditEvent.
	IntegritySigner *IntegritySigner
	// Subscriber, when set, receives every event that passes the severity
	// filter, independent of Output. Intended for a live fan-out collaborator
	// (a websocket hub) that wants the event as a value, not a log line.
	Subscriber func(AuditEvent)
}

// DefaultAuditConfig returns an AuditConfig with sensible defaults.
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		Enabled:          true,
		Output:           os.Stderr,
		BufferSize:       DefaultAuditBufferSize,
		IncludeTimestamp: true,
		JSONFormat:       true,
		MinimumSeverity:  AuditSeverityInfo,
	}
}

// AuditLogger streams audit events asynchronously via a buffered channel,
// so logging a redaction never blocks Anonymize's hot path.
type AuditLogger struct {
	config  *AuditConfig
	events  chan AuditEvent
	done    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool
	dropped atomic.Int64

	totalEvents atomic.Int64
	byType      sync.Map // map[AuditEventType]*atomic.Int64
}

// NewAuditLogger creates a new AuditLogger with the given configuration.
// If no configuration is provided, DefaultAuditConfig() is used.
func NewAuditLogger(configs ...*AuditConfig) *AuditLogger {
	var config *AuditConfig
	if len(configs) > 0 {
		config = configs[0]
	}
	if config == nil {
		config = DefaultAuditConfig()
	}

	al := &AuditLogger{
		config: config,
		events: make(chan AuditEvent, config.BufferSize),
		done:   make(chan struct{}),
	}

	if config.Enabled {
		al.wg.Add(1)
		go al.processEvents()
	}

	return al
}

// Log records an audit event asynchronously. If the buffer is full, the
// event is dropped and the dropped counter is incremented.
func (al *AuditLogger) Log(event AuditEvent) {
	if al == nil || !al.config.Enabled || al.closed.Load() {
		return
	}

	if event.Severity < al.config.MinimumSeverity {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case al.events <- event:
		al.totalEvents.Add(1)
		al.incrementTypeCount(event.Type)
	default:
		al.dropped.Add(1)
	}
}

// LogRedaction logs one resolved, substituted match.
func (al *AuditLogger) LogRedaction(r Replacement) {
	al.Log(AuditEvent{
		Type:       AuditEventSensitiveDataRedacted,
		Message:    fmt.Sprintf("redacted %s as %s", r.Category, r.Placeholder),
		Category:   r.Category.DebugName(),
		DetectorID: r.DetectorID,
		Severity:   AuditSeverityInfo,
	})
}

// LogRateLimitExceeded logs a rate limit exceeded event.
func (al *AuditLogger) LogRateLimitExceeded(message string, metadata map[string]any) {
	al.Log(AuditEvent{
		Type:     AuditEventRateLimitExceeded,
		Message:  message,
		Metadata: metadata,
		Severity: AuditSeverityWarning,
	})
}

// LogSecurityViolation logs a security violation event.
func (al *AuditLogger) LogSecurityViolation(violationType string, message string, metadata map[string]any) {
	al.Log(AuditEvent{
		Type:     AuditEventSecurityViolation,
		Message:  fmt.Sprintf("%s: %s", violationType, message),
		Metadata: metadata,
		Severity: AuditSeverityError,
	})
}

// LogReDoSAttempt logs a detector pattern rejected by the ReDoS guard.
func (al *AuditLogger) LogReDoSAttempt(detectorID, message string) {
	al.Log(AuditEvent{
		Type:       AuditEventReDoSAttempt,
		Message:    message,
		DetectorID: detectorID,
		Severity:   AuditSeverityCritical,
	})
}

// LogIntegrityViolation logs an integrity violation event.
func (al *AuditLogger) LogIntegrityViolation(message string, metadata map[string]any) {
	al.Log(AuditEvent{
		Type:     AuditEventIntegrityViolation,
		Message:  message,
		Metadata: metadata,
		Severity: AuditSeverityCritical,
	})
}

// LogInputSanitized logs that an input was rejected or altered before
// processing; Normalize calls it when it rejects an oversized input.
func (al *AuditLogger) LogInputSanitized(field, message string) {
	al.Log(AuditEvent{
		Type:     AuditEventInputSanitized,
		Message:  message,
		Metadata: map[string]any{"field": field},
		Severity: AuditSeverityInfo,
	})
}

// processEvents processes audit events asynchronously.
func (al *AuditLogger) processEvents() {
	defer al.wg.Done()

	for {
		select {
		case <-al.done:
			for {
				select {
				case event := <-al.events:
					al.writeEvent(event)
				default:
					return
				}
			}
		case event := <-al.events:
			al.writeEvent(event)
		}
	}
}

// writeEvent writes an event to the configured output, signing it first if
// an IntegritySigner is configured.
func (al *AuditLogger) writeEvent(event AuditEvent) {
	if al.config.Subscriber != nil {
		al.config.Subscriber(event)
	}

	if al.config.Output == nil {
		return
	}

	var output string
	if al.config.JSONFormat {
		data, err := json.Marshal(event)
		if err != nil {
			fmt.Fprintf(os.Stderr, "anonymize: failed to marshal audit event: %v\n", err)
			return
		}
		output = string(data)
	} else {
		message := internal.SanitizeControlChars(event.Message)
		category := internal.SanitizeControlChars(event.Category)
		detectorID := internal.SanitizeControlChars(event.DetectorID)

		if al.config.IncludeTimestamp {
			output = fmt.Sprintf("[%s] %s: %s",
				event.Timestamp.Format(time.RFC3339),
				event.Type,
				message)
		} else {
			output = fmt.Sprintf("[%s] %s", event.Type, message)
		}
		if category != "" {
			output += fmt.Sprintf(" category=%s", category)
		}
		if detectorID != "" {
			output += fmt.Sprintf(" detector=%s", detectorID)
		}
	}

	if al.config.IntegritySigner != nil {
		signature := al.config.IntegritySigner.Sign(output)
		output = output + " " + signature
	}

	fmt.Fprintln(al.config.Output, output)
}

// incrementTypeCount increments the count for an event type.
func (al *AuditLogger) incrementTypeCount(eventType AuditEventType) {
	if ptr, ok := al.byType.Load(eventType); ok {
		if counter, ok := ptr.(*atomic.Int64); ok {
			counter.Add(1)
			return
		}
	}

	counter := &atomic.Int64{}
	counter.Store(1)
	if actual, loaded := al.byType.LoadOrStore(eventType, counter); loaded {
		if existingCounter, ok := actual.(*atomic.Int64); ok {
			existingCounter.Add(1)
		}
	}
}

// AuditStats holds audit logger statistics.
type AuditStats struct {
	TotalEvents int64
	Dropped     int64
	ByType      map[AuditEventType]int64
	BufferSize  int
	BufferUsage int
}

// Stats returns current audit logger statistics.
func (al *AuditLogger) Stats() AuditStats {
	if al == nil {
		return AuditStats{}
	}

	stats := AuditStats{
		TotalEvents: al.totalEvents.Load(),
		Dropped:     al.dropped.Load(),
		BufferSize:  al.config.BufferSize,
		BufferUsage: len(al.events),
		ByType:      make(map[AuditEventType]int64),
	}

	al.byType.Range(func(key, value any) bool {
		if eventType, ok := key.(AuditEventType); ok {
			if counter, ok := value.(*atomic.Int64); ok {
				stats.ByType[eventType] = counter.Load()
			}
		}
		return true
	})

	return stats
}

// Close stops the audit logger and flushes remaining events.
func (al *AuditLogger) Close() error {
	if al == nil || al.closed.Swap(true) {
		return nil
	}

	close(al.done)
	al.wg.Wait()

	return nil
}

// Clone creates a copy of the AuditConfig. IntegritySigner is shared, not
// cloned, since it maintains internal sequence state.
func (c *AuditConfig) Clone() *AuditConfig {
	if c == nil {
		return nil
	}

	return &AuditConfig{
		Enabled:          c.Enabled,
		Output:           c.Output,
		BufferSize:       c.BufferSize,
		IncludeTimestamp: c.IncludeTimestamp,
		JSONFormat:       c.JSONFormat,
		MinimumSeverity:  c.MinimumSeverity,
		IntegritySigner:  c.IntegritySigner,
		Subscriber:       c.Subscriber,
	}
}

// AuditVerificationResult contains the result of audit event verification.
type AuditVerificationResult struct {
	Valid    bool
	Event    *AuditEvent
	RawEvent string
	Error    error
}

// VerifyAuditEvent verifies the integrity of an audit log entry.
func VerifyAuditEvent(entry string, signer *IntegritySigner) *AuditVerificationResult {
	result := &AuditVerificationResult{}

	if signer == nil {
		result.Valid = false
		result.Error = fmt.Errorf("signer is nil")
		return result
	}

	integrity, err := signer.Verify(entry)
	if err != nil {
		result.Valid = false
		result.Error = err
		return result
	}

	if !integrity.Valid {
		result.Valid = false
		result.RawEvent = integrity.Message
		return result
	}

	result.Valid = true
	result.RawEvent = integrity.Message

	var event AuditEvent
	if err := json.Unmarshal([]byte(result.RawEvent), &event); err == nil {
		result.Event = &event
	}

	return result
}
