package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "leadverify/internal/http"
	"leadverify/platform/apperr"
	"leadverify/platform/logger"

	"github.com/gin-gonic/gin"
)

type fakeReconciler struct {
	completed []completedCall
	cached    []cachedResult
	err       error
}

type completedCall struct {
	jobID, callID, endedReason, summary string
}

type cachedResult struct {
	callID, endedReason, summary string
}

func (f *fakeReconciler) CompleteCall(ctx context.Context, jobID, callID, endedReason, summary string) error {
	if f.err != nil {
		return f.err
	}
	f.completed = append(f.completed, completedCall{jobID, callID, endedReason, summary})
	return nil
}

func (f *fakeReconciler) CacheInterimResult(callID, endedReason, summary string) {
	f.cached = append(f.cached, cachedResult{callID, endedReason, summary})
}

func newTestRouter(rec Reconciler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	ctx := &apphttp.RouterContext{Engine: engine, V1: engine.Group("/api/v1")}
	NewModule(rec, logger.New("development")).RegisterRoutes(ctx)
	return engine
}

func post(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/vapi-end-call", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEndOfCallReportCompletesCall(t *testing.T) {
	rec := &fakeReconciler{}
	router := newTestRouter(rec)

	body := `{"message":{"type":"end-of-call-report","endedReason":"customer-did-not-answer",
		"analysis":{"summary":"No Answer"},
		"call":{"id":"call-1","metadata":{"jobId":"job-1","lead":{"phoneNumber":"+12128675301","firstName":"Ada","lastName":"Lovelace"}}}}}`

	resp := post(t, router, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(rec.completed) != 1 {
		t.Fatalf("expected one completion, got %d", len(rec.completed))
	}
	got := rec.completed[0]
	if got.jobID != "job-1" || got.callID != "call-1" || got.endedReason != "customer-did-not-answer" || got.summary != "No Answer" {
		t.Fatalf("unexpected completion: %+v", got)
	}
}

func TestEndOfCallReportMissingMetadata(t *testing.T) {
	rec := &fakeReconciler{}
	router := newTestRouter(rec)

	tests := []struct {
		name string
		body string
	}{
		{"no metadata", `{"message":{"type":"end-of-call-report","call":{"id":"call-1"}}}`},
		{"no job ID", `{"message":{"type":"end-of-call-report","call":{"id":"call-1","metadata":{"lead":{"phoneNumber":"+12128675301"}}}}}`},
		{"no lead", `{"message":{"type":"end-of-call-report","call":{"id":"call-1","metadata":{"jobId":"job-1"}}}}`},
		{"no call ID", `{"message":{"type":"end-of-call-report","call":{"metadata":{"jobId":"job-1","lead":{"phoneNumber":"+12128675301"}}}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if resp := post(t, router, tc.body); resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
	}
	if len(rec.completed) != 0 {
		t.Fatalf("no completion expected, got %+v", rec.completed)
	}
}

func TestEndOfCallReportUnknownJob(t *testing.T) {
	rec := &fakeReconciler{err: apperr.NotFound("verification job not found")}
	router := newTestRouter(rec)

	body := `{"message":{"type":"end-of-call-report","endedReason":"voicemail",
		"call":{"id":"call-1","metadata":{"jobId":"gone","lead":{"phoneNumber":"+12128675301"}}}}}`

	if resp := post(t, router, body); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMalformedPayload(t *testing.T) {
	router := newTestRouter(&fakeReconciler{})

	if resp := post(t, router, `{"message":`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestTerminalStatusUpdateIsCached(t *testing.T) {
	rec := &fakeReconciler{}
	router := newTestRouter(rec)

	body := `{"message":{"type":"status-update","status":"ended","endedReason":"customer-busy","call":{"id":"call-1"}}}`

	if resp := post(t, router, body); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(rec.cached) != 1 || rec.cached[0].endedReason != "customer-busy" {
		t.Fatalf("expected cached interim result, got %+v", rec.cached)
	}
	if len(rec.completed) != 0 {
		t.Fatalf("status update must not complete the call, got %+v", rec.completed)
	}
}

func TestNonTerminalStatusUpdateIgnored(t *testing.T) {
	rec := &fakeReconciler{}
	router := newTestRouter(rec)

	body := `{"message":{"type":"status-update","status":"in-progress","call":{"id":"call-1"}}}`

	if resp := post(t, router, body); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(rec.cached) != 0 {
		t.Fatalf("non-terminal update must not be cached, got %+v", rec.cached)
	}
}

func TestUnrelatedMessageTypeAcknowledged(t *testing.T) {
	rec := &fakeReconciler{}
	router := newTestRouter(rec)

	body := `{"message":{"type":"speech-update","call":{"id":"call-1"}}}`

	if resp := post(t, router, body); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(rec.cached) != 0 || len(rec.completed) != 0 {
		t.Fatal("unrelated message types must have no effect")
	}
}
