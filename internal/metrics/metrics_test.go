package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveReport(t *testing.T) {
	c := New()

	c.ObserveReport(OutcomeSuccess, 120, 2, 300*time.Millisecond)
	c.ObserveReport(OutcomeError, 0, 1, time.Second)
	c.ObserveUpstream(UpstreamMailchimp, OutcomeSuccess)

	require.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCalls.WithLabelValues(UpstreamGA4, OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCalls.WithLabelValues(UpstreamGA4, OutcomeError)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCalls.WithLabelValues(UpstreamMailchimp, OutcomeSuccess)))
	require.Equal(t, 1, testutil.CollectAndCount(c.reportRows))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveUpstream(UpstreamGA4, OutcomeSuccess)
	c.ObserveReport(OutcomeSuccess, 1, 1, time.Millisecond)
}

func TestHandler(t *testing.T) {
	c := New()
	c.ObserveUpstream(UpstreamGA4, OutcomeTokenError)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `analytics_gateway_upstream_calls_total{outcome="token_error",upstream="ga4"} 1`)
}
