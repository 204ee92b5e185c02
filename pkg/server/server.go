package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/modfence/modfence/pkg/config"
)

const HealthPath = "/health"

// Server is the common behavior of all servers.
type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	config         *config.Config
	logger         *logrus.Logger
	router         *fiber.App
	metricsStarted bool
}

func NewBaseServer(cfg *config.Config, logger *logrus.Logger) *BaseServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             8 * 1024 * 1024,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	r.Server().NoDefaultServerHeader = true
	r.Server().NoDefaultDate = true

	return &BaseServer{
		config: cfg,
		logger: logger,
		router: r,
	}
}

func (s *BaseServer) setupHealthCheck() {
	s.router.Get(HealthPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *BaseServer) setupMetricsEndpoint() {
	if !s.config.Metrics.Enabled {
		s.logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsStarted {
		return
	}
	s.metricsStarted = true

	metricsApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Metrics listen on their own port so the webhook surface stays minimal.
	go func() {
		addr := fmt.Sprintf(":%d", s.config.Server.MetricsPort)
		if err := metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
}
