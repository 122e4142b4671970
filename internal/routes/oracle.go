package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/oracle"
	"github.com/mettaway/ventara/internal/telemetry"
	apperrors "github.com/mettaway/ventara/pkg/errors"
)

// Categorizer assigns a bird category from quiz answers.
type Categorizer interface {
	Categorize(ctx context.Context, answers []models.Answer) (string, error)
}

type OracleHandler struct {
	oracle   Categorizer
	reporter telemetry.Reporter
	logger   *logrus.Logger
}

func NewOracleHandler(o Categorizer, reporter telemetry.Reporter, logger *logrus.Logger) *OracleHandler {
	return &OracleHandler{oracle: o, reporter: reporter, logger: logger}
}

// Categorize asks the oracle for the caller's bird category
// @Summary Categorize bird
// @Description Classifies quiz answers into one of the fixed bird categories.
// @Tags Oracle
// @Accept json
// @Produce json
// @Param request body models.CategorizeRequest true "Quiz answers"
// @Success 200 {object} models.CategorizeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /categorize-bird [post]
func (h *OracleHandler) Categorize(c *fiber.Ctx) error {
	var req models.CategorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid request body", err))
	}

	category, err := h.oracle.Categorize(c.UserContext(), req.Answers())
	if errors.Is(err, oracle.ErrNotConfigured) {
		return sendError(c, apperrors.NewAppError(apperrors.CodeUpstreamUnavailable, "Failed to categorize bird", err).
			WithDetails("The oracle is not configured"))
	}
	if err != nil {
		logging.WithRequestID(h.logger, c.GetRespHeader(fiber.HeaderXRequestID)).WithError(err).Error("Error categorizing bird")
		h.reporter.CaptureError(err, telemetry.LevelError, telemetry.Event{
			Tags: map[string]string{
				"errorType": "oracle_error",
				"endpoint":  "categorize_bird",
			},
			Extra: map[string]interface{}{
				"errorMessage": err.Error(),
			},
		})
		return sendError(c, apperrors.NewAppError(apperrors.CodeUpstreamFailure, "Failed to categorize bird", err))
	}

	return c.JSON(models.CategorizeResponse{
		Success:      true,
		Category:     category,
		BirdCategory: category,
	})
}
