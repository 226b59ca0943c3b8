package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Observe(t *testing.T) {
	r := NewRegistry()

	r.ObserveAdmission("demand", "admitted")
	r.ObserveAdmission("demand", "admitted")
	r.ObserveAdmission("delivery", "rejected")
	r.ObserveProjection("customer", 0.01)
	r.ObserveCache(true)
	r.ObserveCache(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Admissions.WithLabelValues("demand", "admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Admissions.WithLabelValues("delivery", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Projections.WithLabelValues("customer")))

	totals, err := r.Totals()
	require.NoError(t, err)
	assert.Equal(t, 3.0, totals["supplycover_admissions_total"])
	assert.Equal(t, 2.0, totals["supplycover_cache_lookups_total"])
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry
	r.ObserveAdmission("demand", "admitted")
	r.ObserveProjection("supplier", 1)
	r.ObserveCache(true)

	totals, err := r.Totals()
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveProjection("customer", 0.2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "supplycover_projections_total"))
}
