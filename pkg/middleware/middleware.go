package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

// Transport groups the middlewares wired into the server.
type Transport struct {
	PanicRecover Middleware
	Metrics      Middleware
}
