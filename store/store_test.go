package store

import (
	"context"
	"testing"

	"github.com/cybergodev/anonymize"
)

// auditRecorder mirrors httpapi.AuditRecorder without importing that
// package (and with it gin); this just pins *AuditStore's Save signature
// against drift.
type auditRecorder interface {
	Save(ctx context.Context, report *anonymize.AuditReport) error
}

func TestAuditStoreSatisfiesRecorderInterface(t *testing.T) {
	var _ auditRecorder = (*AuditStore)(nil)
}
