package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/registration"
	"github.com/mettaway/ventara/internal/telemetry"
	apperrors "github.com/mettaway/ventara/pkg/errors"
)

type EmailHandler struct {
	notifier registration.Notifier
	reporter telemetry.Reporter
	logger   *logrus.Logger
}

func NewEmailHandler(notifier registration.Notifier, reporter telemetry.Reporter, logger *logrus.Logger) *EmailHandler {
	return &EmailHandler{notifier: notifier, reporter: reporter, logger: logger}
}

// SendConfirmation sends the welcome email
// @Summary Send confirmation email
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body models.ConfirmationRequest true "Recipient"
// @Success 200 {object} models.ConfirmationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse "Mail not configured"
// @Router /send-confirmation-email [post]
func (h *EmailHandler) SendConfirmation(c *fiber.Ctx) error {
	var req models.ConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid request body", err))
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FirstName) == "" {
		return sendError(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Missing required fields", nil).
			WithDetails("email and firstName are required"))
	}

	if !h.notifier.Configured() {
		return sendError(c, apperrors.NewAppError(apperrors.CodeUpstreamUnavailable, "Email service is not configured", nil))
	}

	emailID, err := h.notifier.SendConfirmation(c.UserContext(), req)
	if err != nil {
		logging.WithRequestID(h.logger, c.GetRespHeader(fiber.HeaderXRequestID)).WithError(err).
			WithField("submission_id", req.SubmissionID).Error("Error sending email")
		h.reporter.CaptureError(err, telemetry.LevelError, telemetry.Event{
			Tags: map[string]string{
				"errorType": "email_error",
				"endpoint":  "send_confirmation_email",
			},
			Extra: map[string]interface{}{
				"submissionId": req.SubmissionID,
			},
			UserEmail: req.Email,
		})
		return sendError(c, apperrors.NewAppError(apperrors.CodeUpstreamFailure, "Failed to send email", err))
	}

	return c.JSON(models.ConfirmationResponse{Success: true, EmailID: emailID})
}
