package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the supplycover collectors on a private prometheus registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg               *prometheus.Registry
	Admissions        *prometheus.CounterVec
	Projections       *prometheus.CounterVec
	ProjectionSeconds prometheus.Histogram
	CacheLookups      *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	admissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplycover_admissions_total",
		Help: "Record admission outcomes by kind.",
	}, []string{"kind", "outcome"})
	projections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplycover_projections_total",
		Help: "Days of supply projections by role.",
	}, []string{"role"})
	projectionSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "supplycover_projection_seconds",
		Buckets: prometheus.DefBuckets,
	})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplycover_cache_lookups_total",
	}, []string{"result"})

	r.MustRegister(admissions, projections, projectionSeconds, cacheLookups)
	return &Registry{
		reg:               r,
		Admissions:        admissions,
		Projections:       projections,
		ProjectionSeconds: projectionSeconds,
		CacheLookups:      cacheLookups,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// ObserveAdmission counts one admission outcome ("admitted", "rejected", ...)
func (r *Registry) ObserveAdmission(kind, outcome string) {
	if r == nil {
		return
	}
	r.Admissions.WithLabelValues(kind, outcome).Inc()
}

// ObserveProjection counts one projection and its duration
func (r *Registry) ObserveProjection(role string, seconds float64) {
	if r == nil {
		return
	}
	r.Projections.WithLabelValues(role).Inc()
	r.ProjectionSeconds.Observe(seconds)
}

// ObserveCache counts a cache hit or miss
func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(result).Inc()
}

// Totals sums every counter family by name
func (r *Registry) Totals() (map[string]float64, error) {
	totals := make(map[string]float64)
	if r == nil {
		return totals, nil
	}
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if counter := metric.GetCounter(); counter != nil {
				totals[family.GetName()] += counter.GetValue()
			}
		}
	}
	return totals, nil
}
