// Package httpapi is a thin external collaborator wrapping
// anonymize.Anonymizer behind gin, with a live audit-event websocket stream
// and, if an AuditStore is attached, compliance-retention persistence of
// completed reports. None of this sits in the synchronous Anonymize call
// path.
package httpapi

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cybergodev/anonymize"
)

// AuditRecorder persists a completed AuditReport. *store.AuditStore (package
// github.com/cybergodev/anonymize/store) satisfies this; it is kept as an
// interface here so handlers can be tested without a live Postgres
// connection, and so this package does not have to import pgx transitively.
type AuditRecorder interface {
	Save(ctx context.Context, report *anonymize.AuditReport) error
}

// Server bundles an Anonymizer with its optional HTTP collaborators.
type Server struct {
	az    *anonymize.Anonymizer
	hub   *Hub
	store AuditRecorder
}

// NewServer wires az into an HTTP facade. hub and recorder may be nil: a
// nil hub disables /api/audit-stream broadcasting, a nil recorder disables
// persistence of completed reports.
func NewServer(az *anonymize.Anonymizer, hub *Hub, recorder AuditRecorder) *Server {
	return &Server{az: az, hub: hub, store: recorder}
}

// AnonymizeRequest is the JSON body for POST /api/anonymize.
type AnonymizeRequest struct {
	Text string `json:"text"`
}

// AnonymizeResponse is the JSON body returned by POST /api/anonymize.
type AnonymizeResponse struct {
	AnonymizedText string                 `json:"anonymized_text"`
	AuditReport    *anonymize.AuditReport `json:"audit_report"`
	Hash           string                 `json:"hash"`
}

// AnonymizeFileResponse is the JSON body returned by
// POST /api/anonymize-file: the anonymized file content is returned
// base64-encoded rather than as a raw body, so it travels alongside its
// audit report in a single JSON envelope.
type AnonymizeFileResponse struct {
	FileBase64  string                 `json:"file_base64"`
	Filename    string                 `json:"filename"`
	AuditReport *anonymize.AuditReport `json:"audit_report"`
}

func (s *Server) errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Error: err.Error(), RequestID: requestIDFromContext(c)})
}

func (s *Server) recordReport(c *gin.Context, report *anonymize.AuditReport) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(c.Request.Context(), report); err != nil {
		// Persistence is best-effort retention, never a reason to fail an
		// already-completed anonymization.
		c.Writer.Header().Set("X-Audit-Store-Error", "1")
	}
}

// handleAnonymize implements POST /api/anonymize.
func (s *Server) handleAnonymize(c *gin.Context) {
	var req AnonymizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorJSON(c, http.StatusBadRequest, err)
		return
	}

	out, err := s.az.Anonymize(req.Text)
	if err != nil {
		s.errorJSON(c, http.StatusBadRequest, err)
		return
	}

	s.recordReport(c, out.Report)

	c.JSON(http.StatusOK, AnonymizeResponse{
		AnonymizedText: out.Text,
		AuditReport:    out.Report,
		Hash:           out.Hash,
	})
}

// handleAnonymizeFile implements POST /api/anonymize-file: a multipart
// upload (field name "file") capped at anonymize.MaxUploadBytes, read as
// UTF-8 text, anonymized, and returned base64-encoded alongside its report.
func (s *Server) handleAnonymizeFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, anonymize.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.errorJSON(c, http.StatusBadRequest, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.errorJSON(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorJSON(c, http.StatusBadRequest, err)
		return
	}

	out, err := s.az.Anonymize(string(content))
	if err != nil {
		s.errorJSON(c, http.StatusBadRequest, err)
		return
	}

	s.recordReport(c, out.Report)

	c.JSON(http.StatusOK, AnonymizeFileResponse{
		FileBase64:  base64.StdEncoding.EncodeToString([]byte(out.Text)),
		Filename:    fileHeader.Filename,
		AuditReport: out.Report,
	})
}

// handleHealth implements GET /healthz.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "operational",
		"storeWired":   s.store != nil,
		"streamActive": s.hub != nil,
	})
}
