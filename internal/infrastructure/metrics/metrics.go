package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// predictionsTotal counts scored records.
	// Labels: verdict (high_risk, low_risk)
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heart_risk",
		Subsystem: "prediction",
		Name:      "total",
		Help:      "Total assessments scored by verdict",
	}, []string{"verdict"})

	// predictionLatency measures encode + predict time.
	predictionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "heart_risk",
		Subsystem: "prediction",
		Name:      "latency_seconds",
		Help:      "Time spent encoding and scoring one record",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	// predictionErrors counts classifier failures.
	predictionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "heart_risk",
		Subsystem: "prediction",
		Name:      "errors_total",
		Help:      "Total classifier failures",
	})

	// validationFailures counts rejected submissions.
	// Labels: surface (api, form, cli)
	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heart_risk",
		Subsystem: "input",
		Name:      "validation_failures_total",
		Help:      "Total submissions rejected by input validation",
	}, []string{"surface"})
)

func ObservePrediction(verdict string, elapsed time.Duration) {
	predictionsTotal.WithLabelValues(verdict).Inc()
	predictionLatency.Observe(elapsed.Seconds())
}

func IncPredictionError() {
	predictionErrors.Inc()
}

func IncValidationFailure(surface string) {
	validationFailures.WithLabelValues(surface).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
