package observability

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements Metrics on a private Prometheus registry.
// Collectors are created on first use; the tag keys of that first call fix
// the label names for the metric. Calls with a different key set are dropped
// and logged.
type PrometheusMetrics struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusMetrics creates a registry with Go runtime collectors
// registered.
func NewPrometheusMetrics(logger *slog.Logger) *PrometheusMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &PrometheusMetrics{
		registry:   registry,
		logger:     logger,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// Registry exposes the underlying registry.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	vec, ok := m.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: helpFor(name)}, labelNames(tags))
		if !m.register(name, vec) {
			m.mu.Unlock()
			return
		}
		m.counters[name] = vec
	}
	m.mu.Unlock()

	counter, err := vec.GetMetricWith(labels(tags))
	if err != nil {
		m.logger.Warn("metric label mismatch", "metric", name, "error", err)
		return
	}
	counter.Add(float64(value))
}

func (m *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	vec, ok := m.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: helpFor(name)}, labelNames(tags))
		if !m.register(name, vec) {
			m.mu.Unlock()
			return
		}
		m.gauges[name] = vec
	}
	m.mu.Unlock()

	gauge, err := vec.GetMetricWith(labels(tags))
	if err != nil {
		m.logger.Warn("metric label mismatch", "metric", name, "error", err)
		return
	}
	gauge.Set(value)
}

func (m *PrometheusMetrics) Histogram(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	vec, ok := m.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    helpFor(name),
			Buckets: prometheus.DefBuckets,
		}, labelNames(tags))
		if !m.register(name, vec) {
			m.mu.Unlock()
			return
		}
		m.histograms[name] = vec
	}
	m.mu.Unlock()

	observer, err := vec.GetMetricWith(labels(tags))
	if err != nil {
		m.logger.Warn("metric label mismatch", "metric", name, "error", err)
		return
	}
	observer.Observe(value)
}

// Timing records the duration in seconds.
func (m *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.Histogram(name, duration.Seconds(), tags...)
}

func (m *PrometheusMetrics) register(name string, c prometheus.Collector) bool {
	if err := m.registry.Register(c); err != nil {
		m.logger.Warn("metric registration failed", "metric", name, "error", err)
		return false
	}
	return true
}

func labelNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Key)
	}
	return names
}

func labels(tags []Tag) prometheus.Labels {
	out := make(prometheus.Labels, len(tags))
	for _, t := range tags {
		out[t.Key] = t.Value
	}
	return out
}

var metricHelp = map[string]string{
	MetricCommandsTotal:   "Total number of dispatched console commands by invocation name and outcome",
	MetricCommandDuration: "Duration of console command execution in seconds",
	MetricErrorsTotal:     "Total number of command failures by error kind",
	MetricDomainEvents:    "Total number of published domain events by routing key",
	MetricMeetingsStored:  "Number of meetings currently stored",
}

func helpFor(name string) string {
	if help, ok := metricHelp[name]; ok {
		return help
	}
	return name
}
