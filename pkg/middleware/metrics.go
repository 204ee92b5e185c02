package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/modfence/modfence/pkg/infra/metrics"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		metrics.HTTPRequestDuration.WithLabelValues(c.Path()).Observe(time.Since(start).Seconds())
		return err
	}
}
