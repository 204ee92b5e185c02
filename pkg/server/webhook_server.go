package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/config"
	handlers "github.com/modfence/modfence/pkg/handlers/http"
	"github.com/modfence/modfence/pkg/middleware"
)

type (
	WebhookServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	WebhookServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewWebhookServer(di WebhookServerDI) *WebhookServer {
	return &WebhookServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *WebhookServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting moderation webhook server")
	return s.router.Listen(addr)
}

func (s *WebhookServer) setupRoutes() {
	s.router.Use(s.middlewareTransport.PanicRecover.Middleware())
	s.router.Use(s.middlewareTransport.Metrics.Middleware())

	s.router.Post("/webhook", s.handlerTransport.WebhookHandler.Handle)
}

func (s *WebhookServer) Shutdown() error {
	return s.router.Shutdown()
}
