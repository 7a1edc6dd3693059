package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics содержит счетчики и гистограммы Prometheus для сервиса Headlines.
type Metrics struct {
	DashboardRequests prometheus.Counter

	// Обращения к внешним источникам.
	UpstreamRequests *prometheus.CounterVec   // метки: source={feed,weather,rates}, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // метки: source={feed,weather,rates}

	// Секции страницы, отданные в деградированном виде.
	DegradedSections *prometheus.CounterVec // метка: section={articles,weather,rate}
}

// NewMetrics создает и регистрирует все метрики сервиса в реестре
// Prometheus по умолчанию.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DashboardRequests,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.DegradedSections,
	)
	return m
}

// NewMetricsForTesting создает метрики без регистрации в глобальном реестре,
// чтобы избежать паники "already registered" при вызове из нескольких тестов.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DashboardRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "headlines",
			Name:      "dashboard_requests_total",
			Help:      "Total dashboard page builds.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "headlines",
			Name:      "upstream_requests_total",
			Help:      "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "headlines",
			Name:      "upstream_duration_seconds",
			Help:      "Upstream fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		DegradedSections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "headlines",
			Name:      "degraded_sections_total",
			Help:      "Dashboard sections rendered in degraded form.",
		}, []string{"section"}),
	}
}
