package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(c *fiber.Ctx) error
}

// HandlerTransport groups the HTTP handlers wired into the server.
type HandlerTransport struct {
	WebhookHandler Handler
}
