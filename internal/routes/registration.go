package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/registration"
	"github.com/mettaway/ventara/internal/telemetry"
	apperrors "github.com/mettaway/ventara/pkg/errors"
)

// Submitter persists registrations.
type Submitter interface {
	Submit(ctx context.Context, payload models.RegistrationPayload) (registration.Result, error)
}

// Counter reports the number of stored registrations.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type RegistrationHandler struct {
	submitter  Submitter
	counter    Counter
	session    *middleware.SessionManager
	reporter   telemetry.Reporter
	notionPage bool
	logger     *logrus.Logger
}

// NewRegistrationHandler creates the handler. notionPage controls whether
// the record ID is echoed as notionPageId.
func NewRegistrationHandler(submitter Submitter, counter Counter, session *middleware.SessionManager, reporter telemetry.Reporter, notionPage bool, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		submitter:  submitter,
		counter:    counter,
		session:    session,
		reporter:   reporter,
		notionPage: notionPage,
		logger:     logger,
	}
}

// Submit stores a registration
// @Summary Submit registration
// @Description Validates, deduplicates by email and stores one registration, then sends the confirmation email in the background.
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body models.RegistrationPayload true "Registration"
// @Success 200 {object} models.RegistrationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse "Email already registered"
// @Failure 500 {object} errors.ErrorResponse
// @Router /submit-registration [post]
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	var payload models.RegistrationPayload
	if err := c.BodyParser(&payload); err != nil {
		return sendError(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid request body", err).WithDetails(err.Error()))
	}

	res, err := h.submitter.Submit(c.UserContext(), payload)
	if err != nil {
		return sendError(c, err)
	}

	h.session.MarkRegistered(c)

	resp := models.RegistrationResponse{
		Success:      true,
		SubmissionID: res.SubmissionID,
		RecordID:     res.RecordID,
	}
	if h.notionPage {
		resp.NotionPageID = res.RecordID
	}
	return c.JSON(resp)
}

// Count returns the number of registrations
// @Summary Registration count
// @Tags Registration
// @Produce json
// @Success 200 {object} models.CountResponse
// @Failure 500 {object} models.CountResponse
// @Router /registration-count [get]
func (h *RegistrationHandler) Count(c *fiber.Ctx) error {
	count, err := h.counter.Count(c.UserContext())
	if err != nil {
		logging.WithRequestID(h.logger, c.GetRespHeader(fiber.HeaderXRequestID)).WithError(err).Error("Error fetching registration count")
		h.reporter.CaptureError(err, telemetry.LevelError, telemetry.Event{
			Tags: map[string]string{
				"errorType": "server_error",
				"endpoint":  "registration_count",
			},
		})
		return c.Status(fiber.StatusInternalServerError).JSON(models.CountResponse{
			Error:   "Failed to fetch registration count",
			Details: err.Error(),
		})
	}

	return c.JSON(models.CountResponse{Success: true, Count: count})
}
