package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveUpstream(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveUpstream("price lookup", 10*time.Millisecond, nil)
	m.ObserveUpstream("price lookup", 10*time.Millisecond, errors.New("boom"))
	m.ObserveUpstream("metadata lookup", 10*time.Millisecond, nil)

	if got := testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("price lookup", OutcomeSuccess)); got != 1 {
		t.Errorf("price success calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("price lookup", OutcomeError)); got != 1 {
		t.Errorf("price error calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("metadata lookup", OutcomeSuccess)); got != 1 {
		t.Errorf("metadata success calls = %v, want 1", got)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("test")

	m.RateLimited()
	m.RateLimited()
	m.AuthFailed()
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	if got := testutil.ToFloat64(m.RateLimitRejections); got != 2 {
		t.Errorf("RateLimitRejections = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AuthFailures); got != 1 {
		t.Errorf("AuthFailures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/", "200")); got != 1 {
		t.Errorf("HTTPRequests = %v, want 1", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RateLimited()
	m.AuthFailed()
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveUpstream("price lookup", time.Millisecond, nil)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("test")
	m.RateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Handler() status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "test_http_rate_limit_rejections_total 1") {
		t.Errorf("Handler() body missing rate limit counter:\n%s", body)
	}
}
