package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New(nil)

	m.ObserveRequest(http.MethodGet, "/api/pets", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/pets", 200, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/pets", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "unmatched", "404")))
}

func TestCounters(t *testing.T) {
	m := New(nil)

	m.IncRegistrations()
	m.AddReminders(3)
	m.AddReminders(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RemindersCreated))
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.IncRegistrations()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "petcare_registrations_total 1")
}
