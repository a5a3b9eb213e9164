package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion results used as the result label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

const namespace = "yamljson"

// Collector records conversion metrics on its own registry.
type Collector struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inputBytes  prometheus.Histogram
}

// NewCollector creates a Collector. A nil registry gets a fresh one with the
// Go runtime and process collectors registered.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: registry,
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Number of YAML conversions by result kind.",
		}, []string{"result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent parsing and converting one YAML document.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"parser"}),
		inputBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "input_bytes",
			Help:      "Size of converted YAML inputs.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}),
	}

	registry.MustRegister(c.conversions, c.duration, c.inputBytes)

	return c
}

// Observe records one conversion. Result is ResultOK or an error kind such as "parse".
func (c *Collector) Observe(parser, result string, size int, elapsed time.Duration) {
	c.conversions.WithLabelValues(result).Inc()
	c.duration.WithLabelValues(parser).Observe(elapsed.Seconds())
	c.inputBytes.Observe(float64(size))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
