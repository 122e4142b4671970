package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	apperrors "github.com/mettaway/ventara/pkg/errors"
)

// sendError writes err as the standard failure envelope.
func sendError(c *fiber.Ctx, err error) error {
	appErr := apperrors.AsAppError(err)
	return c.Status(appErr.HTTPStatus()).JSON(appErr.ToErrorResponse(c.GetRespHeader(fiber.HeaderXRequestID)))
}

// ErrorHandler renders errors returned from handlers and middleware.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(apperrors.ErrorResponse{
				Success: false,
				Error:   fiberErr.Message,
				Code:    codeForStatus(fiberErr.Code),
				TraceID: c.GetRespHeader(fiber.HeaderXRequestID),
			})
		}

		appErr := apperrors.AsAppError(err)
		if appErr.HTTPStatus() >= fiber.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": appErr.HTTPStatus(),
			}).Error("Request error")
		}
		return sendError(c, appErr)
	}
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch {
	case status == fiber.StatusUnauthorized:
		return apperrors.CodeUnauthenticated
	case status == fiber.StatusTooManyRequests:
		return apperrors.CodeRateLimited
	case status >= 500:
		return apperrors.CodeInternalError
	default:
		return apperrors.CodeBadRequest
	}
}
