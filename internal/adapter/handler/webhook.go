package handler

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/errors"
	"github.com/aftermeet-app/aftermeet/internal/usecase/meeting"
	"github.com/aftermeet-app/aftermeet/pkg/ai"
)

const signatureHeader = "X-Signature"

// Webhook receives completion callbacks from the AI analysis service.
// Requests are authenticated with an HMAC signature over the raw body, not
// a user token, so the handler sits outside the auth middleware.
type Webhook struct {
	service *meeting.Service
	secret  string
	logger  *zap.Logger
}

// NewWebhook creates a new webhook handler
func NewWebhook(service *meeting.Service, secret string, logger *zap.Logger) *Webhook {
	return &Webhook{service: service, secret: secret, logger: logger}
}

// HandleAnalysisCallback ingests an asynchronous analysis result. The body
// carries the meeting identifier alongside the analysis payload.
func (h *Webhook) HandleAnalysisCallback(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes))
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidPayload())
	}

	signature := c.Request().Header.Get(signatureHeader)
	if !ai.VerifyHMAC(h.secret, body, signature) {
		if h.logger != nil {
			h.logger.Warn("webhook signature rejected",
				zap.String("request_id", getRequestID(c)),
				zap.Int("body_bytes", len(body)),
			)
		}
		return handleError(c, h.logger, errors.ErrUnauthenticated())
	}

	var envelope struct {
		MeetingID string `json:"meeting_id"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return handleError(c, h.logger, errors.ErrInvalidPayload())
	}
	meetingID, err := uuid.Parse(envelope.MeetingID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("meeting_id must be a valid UUID"))
	}

	result, err := ai.ParseResult(body)
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidPayload())
	}

	summary, err := h.service.CompleteAnalysis(c.Request().Context(), meetingID, result)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return handleSuccess(c, h.logger, map[string]interface{}{
		"status":     "ok",
		"summary_id": summary.ID,
	})
}
