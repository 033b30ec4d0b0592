package pkgmetrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUploadCountsRows(t *testing.T) {
	m := New("test")

	m.ObserveUpload("ingested", 3)
	m.ObserveUpload("rejected", 0)

	if got := testutil.ToFloat64(m.uploads.WithLabelValues("ingested")); got != 1 {
		t.Fatalf("expected 1 ingested upload, got %v", got)
	}
	if got := testutil.ToFloat64(m.uploads.WithLabelValues("rejected")); got != 1 {
		t.Fatalf("expected 1 rejected upload, got %v", got)
	}
	if got := testutil.ToFloat64(m.ingestedRows); got != 3 {
		t.Fatalf("expected 3 ingested rows, got %v", got)
	}
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	m := New("test")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "unmatched", "418")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}

func TestMiddlewareKeepsFlusher(t *testing.T) {
	m := New("test")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("flush: %v", err)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	if !rec.Flushed {
		t.Fatalf("expected response to be flushed")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("test")
	m.ObserveAnalysis("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `test_trend_analyses_total{status="ok"} 1`) {
		t.Fatalf("expected analyses counter in output")
	}
}
