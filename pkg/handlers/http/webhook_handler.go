package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/moderation"
)

// WebhookRequest is the moderation hook payload sent by the chat platform:
// recent history plus the message under moderation, oldest to newest.
type WebhookRequest struct {
	ContextMessages domain.Window `json:"contextMessages"`
}

// WebhookResponse is the exact shape the platform expects back.
// IsMatchingCondition=true blocks delivery of the message.
type WebhookResponse struct {
	IsMatchingCondition bool    `json:"isMatchingCondition"`
	Confidence          float64 `json:"confidence,omitempty"`
	Reason              string  `json:"reason,omitempty"`
}

type webhookHandler struct {
	logger   *logrus.Logger
	pipeline *moderation.Pipeline
}

func NewWebhookHandler(logger *logrus.Logger, pipeline *moderation.Pipeline) Handler {
	return &webhookHandler{logger: logger, pipeline: pipeline}
}

// Handle processes one moderation webhook call. The platform always receives
// HTTP 200 with a well-formed verdict; a payload we cannot parse is allowed
// through (fail-open).
func (h *webhookHandler) Handle(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	log := h.logger.WithField("request_id", requestID)

	var req WebhookRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.WithError(err).Warn("unparseable webhook payload, allowing message")
		return c.Status(fiber.StatusOK).JSON(WebhookResponse{IsMatchingCondition: false})
	}

	verdict := h.pipeline.Moderate(c.UserContext(), req.ContextMessages)

	if verdict.Blocked {
		log.WithField("reason", verdict.Reason).Warn("message blocked")
	}

	return c.Status(fiber.StatusOK).JSON(WebhookResponse{
		IsMatchingCondition: verdict.Blocked,
		Confidence:          verdict.Confidence,
		Reason:              verdict.Reason,
	})
}
