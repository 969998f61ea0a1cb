package anonymize

import "time"

const (
	// DefaultMaxInputBytes is the normalizer's default maximum accepted
	// input size. Larger input is rejected with InputTooLargeError.
	DefaultMaxInputBytes = 100 * 1024 * 1024 // 100 MiB

	// ReportVersion is the stable version string stamped on every
	// AuditReport.
	ReportVersion = "1.0.0"

	// DefaultConfigHash is used when the host does not supply its own
	// configuration fingerprint.
	DefaultConfigHash = "default"
)

const (
	// MaxQuantifierRange bounds the repeat count a host-supplied custom
	// detector pattern may request in a `{n,m}` quantifier before the
	// ReDoS guard rejects it at construction.
	MaxQuantifierRange = 1000

	// MaxPatternLength bounds the byte length of a host-supplied custom
	// detector pattern.
	MaxPatternLength = 1000
)

const (
	// DefaultAuditBufferSize is the default capacity of the async audit
	// event channel.
	DefaultAuditBufferSize = 1000

	// DefaultHTTPRateLimit and DefaultHTTPBurst configure the token-bucket
	// limiter placed in front of the optional HTTP facade.
	DefaultHTTPRateLimit = 20 // requests/sec per client
	DefaultHTTPBurst     = 40

	// DefaultHTTPShutdownTimeout bounds graceful shutdown of the optional
	// HTTP facade.
	DefaultHTTPShutdownTimeout = 10 * time.Second

	// MaxUploadBytes bounds the size of a file accepted by the optional
	// /api/anonymize-file collaborator.
	MaxUploadBytes = 10 * 1024 * 1024 // 10 MiB
)
