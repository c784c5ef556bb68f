package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores del endpoint REST sobre un registro propio (no el global).
type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registra las métricas de llamadas y las del runtime de Go.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "partdb",
			Name:      "rest_calls_total",
			Help:      "Llamadas al endpoint REST por servicio, llamada y estado del sobre.",
		}, []string{"service", "call", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "partdb",
			Name:      "rest_call_duration_seconds",
			Help:      "Duración del despacho de llamadas REST.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "call"}),
	}
	m.registry.MustRegister(
		m.calls,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCall registra una llamada despachada. Acepta receptor nil.
func (m *Metrics) ObserveCall(service, call, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(service, call, status).Inc()
	m.duration.WithLabelValues(service, call).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de texto de Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
