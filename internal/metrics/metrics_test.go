package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ObserveAction("create-transaction", "ok", time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(a.actionsTotal.WithLabelValues("create-transaction", "ok")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.actionsTotal.WithLabelValues("create-transaction", "ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAction("a", "ok", time.Second)
		m.SetQueueDepth(3)
		m.ObserveRefresh("filter", "published", time.Second)
		m.IncrBackendRequest("list-transactions", "ok")
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRefresh("mutation", "published", 10*time.Millisecond)
	m.SetQueueDepth(2)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(body, `ledger_session_refreshes_total{outcome="published",trigger="mutation"} 1`))
	assert.True(t, strings.Contains(body, "ledger_operator_queue_depth 2"))
}
