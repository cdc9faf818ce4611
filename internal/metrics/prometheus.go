package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OldStager01/gpa-tracker/internal/logger"
)

const namespace = "gpatracker"

type Metrics struct {
	registry *prometheus.Registry

	// Counters
	coursesAdded        prometheus.Counter
	coursesRemoved      prometheus.Counter
	predictionsComputed prometheus.Counter
	predictionFailures  *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec

	// Gauges
	courseCount          prometheus.Gauge
	predictedGPA         *prometheus.GaugeVec
	predictionAccuracy   prometheus.Gauge
	predictionConfidence prometheus.Gauge
	circuitBreakerState  *prometheus.GaugeVec

	calculationLatency prometheus.Histogram
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the process-wide metrics set.
func Get() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New builds an independent metrics set on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		coursesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "courses_added_total",
			Help:      "Courses added to the tracker.",
		}),
		coursesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "courses_removed_total",
			Help:      "Courses removed from the tracker.",
		}),
		predictionsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_computed_total",
			Help:      "Successful prediction runs.",
		}),
		predictionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_failures_total",
			Help:      "Prediction runs that did not produce a stored result.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		courseCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "courses",
			Help:      "Courses used by the last prediction run.",
		}),
		predictedGPA: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "predicted_gpa",
			Help:      "Last predicted GPA per model.",
		}, []string{"model"}),
		predictionAccuracy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_accuracy_percent",
			Help:      "Accuracy reported by the last prediction run.",
		}),
		predictionConfidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_confidence",
			Help:      "Confidence score reported by the last prediction run.",
		}),
		circuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "0=closed, 1=open, 2=half-open.",
		}, []string{"name"}),
		calculationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent loading courses, predicting and storing the result.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}

	m.registry.MustRegister(
		m.coursesAdded,
		m.coursesRemoved,
		m.predictionsComputed,
		m.predictionFailures,
		m.httpRequests,
		m.courseCount,
		m.predictedGPA,
		m.predictionAccuracy,
		m.predictionConfidence,
		m.circuitBreakerState,
		m.calculationLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) IncCoursesAdded() {
	m.coursesAdded.Inc()
}

func (m *Metrics) IncCoursesRemoved() {
	m.coursesRemoved.Inc()
}

func (m *Metrics) IncPredictionFailure(reason string) {
	m.predictionFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordPrediction updates every per-run gauge from one successful run.
func (m *Metrics) RecordPrediction(courses int, linear, forest float64, accuracy int, confidence float64, took time.Duration) {
	m.predictionsComputed.Inc()
	m.courseCount.Set(float64(courses))
	m.predictedGPA.WithLabelValues("linear").Set(linear)
	m.predictedGPA.WithLabelValues("random_forest").Set(forest)
	m.predictionAccuracy.Set(float64(accuracy))
	m.predictionConfidence.Set(confidence)
	m.calculationLatency.Observe(took.Seconds())
}

func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.circuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on a dedicated port until ctx is cancelled.
func Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Get().Handler())

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Prometheus metrics server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
