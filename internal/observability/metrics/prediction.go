// Package metrics provides Prometheus metrics for the prediction server.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Prediction outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// PredictionMetrics contains all metrics related to price predictions.
type PredictionMetrics struct {
	PredictionTotal    *prometheus.CounterVec
	PredictionDuration *prometheus.HistogramVec
	ValidationErrors   *prometheus.CounterVec
	ModelInfo          *prometheus.GaugeVec
}

// NewPredictionMetrics creates the prediction metrics and registers them.
func NewPredictionMetrics(registry prometheus.Registerer) (*PredictionMetrics, error) {
	m := &PredictionMetrics{}
	m.initMetrics()

	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register prediction metrics: %w", err)
	}

	return m, nil
}

func (m *PredictionMetrics) initMetrics() {
	m.PredictionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carprice_predictions_total",
			Help: "Total number of prediction requests partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	m.PredictionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carprice_prediction_duration_seconds",
			Help:    "Time spent in the model for one prediction.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"model"},
	)

	m.ValidationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carprice_validation_errors_total",
			Help: "Rejected prediction requests partitioned by offending field.",
		},
		[]string{"field"},
	)

	m.ModelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "carprice_model_info",
			Help: "Always 1; labelled with the loaded model name.",
		},
		[]string{"model"},
	)
}

// RecordPrediction records a model call and its outcome.
func (m *PredictionMetrics) RecordPrediction(model string, durationSeconds float64, err error) {
	m.PredictionDuration.WithLabelValues(model).Observe(durationSeconds)

	if err != nil {
		m.PredictionTotal.WithLabelValues(OutcomeError).Inc()
		return
	}

	m.PredictionTotal.WithLabelValues(OutcomeSuccess).Inc()
}

// RecordValidationError records a request rejected before reaching the model.
func (m *PredictionMetrics) RecordValidationError(field string) {
	m.ValidationErrors.WithLabelValues(field).Inc()
	m.PredictionTotal.WithLabelValues(OutcomeInvalid).Inc()
}

// SetModel marks model as the loaded backend.
func (m *PredictionMetrics) SetModel(model string) {
	m.ModelInfo.Reset()
	m.ModelInfo.WithLabelValues(model).Set(1)
}

// Describe implements the prometheus.Collector interface.
func (m *PredictionMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.PredictionTotal.Describe(ch)
	m.PredictionDuration.Describe(ch)
	m.ValidationErrors.Describe(ch)
	m.ModelInfo.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *PredictionMetrics) Collect(ch chan<- prometheus.Metric) {
	m.PredictionTotal.Collect(ch)
	m.PredictionDuration.Collect(ch)
	m.ValidationErrors.Collect(ch)
	m.ModelInfo.Collect(ch)
}
