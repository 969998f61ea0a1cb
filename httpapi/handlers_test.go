package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cybergodev/anonymize"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	az, err := anonymize.New(anonymize.DefaultConfig())
	if err != nil {
		t.Fatalf("anonymize.New() error = %v", err)
	}
	return SetupRouter(az, nil, nil, nil)
}

func TestHandleAnonymize(t *testing.T) {
	router := newTestServer(t)

	body, _ := json.Marshal(AnonymizeRequest{Text: "Contact: jane.doe@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/anonymize", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp AnonymizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.AnonymizedText != "Contact: [EMAIL_1]" {
		t.Errorf("AnonymizedText = %q", resp.AnonymizedText)
	}
	if resp.AuditReport == nil || resp.AuditReport.Statistics.TotalMatches != 1 {
		t.Errorf("AuditReport = %+v", resp.AuditReport)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestHandleAnonymize_BadBody(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/anonymize", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnonymizeFile(t *testing.T) {
	router := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "note.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("call 600111222 now"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/anonymize-file", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp AnonymizeFileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Filename != "note.txt" {
		t.Errorf("Filename = %q", resp.Filename)
	}
	if resp.FileBase64 == "" {
		t.Error("FileBase64 is empty")
	}
}

func TestHandleHealth(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

type fakeRecorder struct {
	saved []*anonymize.AuditReport
}

func (f *fakeRecorder) Save(ctx context.Context, report *anonymize.AuditReport) error {
	f.saved = append(f.saved, report)
	return nil
}

func TestHandleAnonymize_RecordsToStore(t *testing.T) {
	az, err := anonymize.New(anonymize.DefaultConfig())
	if err != nil {
		t.Fatalf("anonymize.New() error = %v", err)
	}
	recorder := &fakeRecorder{}
	router := SetupRouter(az, nil, recorder, nil)

	body, _ := json.Marshal(AnonymizeRequest{Text: "a@b.co"})
	req := httptest.NewRequest(http.MethodPost, "/api/anonymize", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(recorder.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(recorder.saved))
	}
}

func TestRateLimitMiddleware_RejectsAfterBurst(t *testing.T) {
	az, err := anonymize.New(anonymize.DefaultConfig())
	if err != nil {
		t.Fatalf("anonymize.New() error = %v", err)
	}

	r := gin.New()
	r.Use(RateLimitMiddleware(1, 1, nil))
	srv := NewServer(az, nil, nil)
	r.POST("/api/anonymize", srv.handleAnonymize)

	body, _ := json.Marshal(AnonymizeRequest{Text: "hello"})

	makeReq := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/anonymize", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	first := makeReq()
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := makeReq()
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
}
