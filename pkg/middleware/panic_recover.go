package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				m.logger.WithFields(logrus.Fields{
					"error": r,
					"path":  c.Path(),
				}).Error("HTTP server panic recovered")

				// Fail open: the platform must still get a verdict.
				_ = c.Status(fiber.StatusOK).JSON(fiber.Map{
					"isMatchingCondition": false,
				})
			}
		}()

		return c.Next()
	}
}
