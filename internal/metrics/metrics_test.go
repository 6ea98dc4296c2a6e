package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateMounted(t *testing.T) {
	m := New()
	m.GateMounted("donation")
	m.GateMounted("donation")
	m.GateMounted("subscription")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mounts.WithLabelValues("donation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mounts.WithLabelValues("subscription")))
}

func TestChildLoaded(t *testing.T) {
	m := New()
	m.ChildLoaded("donation", 5*time.Millisecond, nil)
	m.ChildLoaded("subscription", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("donation", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("subscription", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.loadDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.GateMounted("donation")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cerebro_gate_mounts_total{gate="donation"} 1`)
}
