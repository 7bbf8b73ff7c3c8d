package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts stake requests by outcome.
type Metrics struct {
	requests *prometheus.CounterVec
	amount   prometheus.Counter
	latency  prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roristake",
			Name:      "stake_requests_total",
			Help:      "Stake requests handled, by resulting status.",
		}, []string{"status"}),
		amount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roristake",
			Name:      "staked_amount_total",
			Help:      "Sum of accepted stake amounts.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roristake",
			Name:      "stake_request_duration_seconds",
			Help:      "Time spent handling stake requests.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.amount, m.latency)
	}
	return m
}

func (m *Metrics) observe(status string, amount float64, took time.Duration) {
	m.requests.WithLabelValues(status).Inc()
	if status == statusStaked {
		m.amount.Add(amount)
	}
	m.latency.Observe(took.Seconds())
}

type HealthFunc func(ctx context.Context) error

// MetricsHandler serves /metrics and /healthz.
func MetricsHandler(gatherer prometheus.Gatherer, healthFn HealthFunc) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if healthFn != nil {
			if err := healthFn(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
