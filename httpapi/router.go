package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/cybergodev/anonymize"
)

// SetupRouter assembles the gin engine for the optional HTTP facade: CORS,
// request ID stamping, a per-client rate limiter, the two anonymize
// endpoints, a health check, and (when hub is non-nil) the
// /api/audit-stream websocket.
func SetupRouter(az *anonymize.Anonymizer, hub *Hub, recorder AuditRecorder, logger *anonymize.AuditLogger) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(RateLimitMiddleware(anonymize.DefaultHTTPRateLimit, anonymize.DefaultHTTPBurst, logger))

	srv := NewServer(az, hub, recorder)

	r.GET("/healthz", srv.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/anonymize", srv.handleAnonymize)
		api.POST("/anonymize-file", srv.handleAnonymizeFile)
		if hub != nil {
			api.GET("/audit-stream", hub.Subscribe)
		}
	}

	return r
}
