package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	urlHitCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventario_stock_requests_total",
			Help: "Número de peticiones por método, ruta y estado",
		},
		[]string{"method", "route", "status"},
	)
	urlLatency = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "inventario_stock_request_duration_ms",
			Help:       "Cuantiles de latencia por método y ruta",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(urlHitCount)
	prometheus.MustRegister(urlLatency)
}

// MetricsMiddleware registra conteo y latencia por ruta (patrón, no URL cruda,
// para no explotar la cardinalidad con los ids).
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		urlHitCount.WithLabelValues(c.Method(), route, status).Inc()
		urlLatency.WithLabelValues(c.Method(), route).Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}
