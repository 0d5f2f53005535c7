// Package metrics exposes prediction counters and latencies to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "careerpath"

// Metrics holds the prediction collectors
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec
	PredictionErrors   *prometheus.CounterVec
	PredictionDuration prometheus.Histogram
	TopProbability     prometheus.Histogram
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PredictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served by career and whether the corrector overrode the top class",
		}, []string{"career", "overridden"}),
		PredictionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Rejected or failed predictions by error code",
		}, []string{"code"}),
		PredictionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time to validate, engineer features and score one answer set",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		TopProbability: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_top_probability",
			Help:      "Forest probability of the highest ranked class",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns collectors registered on the default registry, created once
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// ObservePrediction records one served prediction
func (m *Metrics) ObservePrediction(career string, overridden bool, topProb float64, elapsed time.Duration) {
	label := "false"
	if overridden {
		label = "true"
	}
	m.PredictionsTotal.WithLabelValues(career, label).Inc()
	m.TopProbability.Observe(topProb)
	m.PredictionDuration.Observe(elapsed.Seconds())
}

// ObserveError records one failed prediction
func (m *Metrics) ObserveError(code string) {
	m.PredictionErrors.WithLabelValues(code).Inc()
}
