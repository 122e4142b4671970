package routes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/gate"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/models"
)

const (
	msgPasswordRequired = "Password is required"
	msgInvalidRequest   = "Invalid request"
	msgAccessGranted    = "Password correct! Access granted."
	msgIncorrect        = "Incorrect password. Please try again."
)

// AuthHandler handles the password gate endpoints
type AuthHandler struct {
	gate    *gate.Gate
	session *middleware.SessionManager
	logger  *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(g *gate.Gate, session *middleware.SessionManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		gate:    g,
		session: session,
		logger:  logger,
	}
}

// ValidatePassword checks the shared password
// @Summary Validate the gate password
// @Description Checks the shared password and sets the session cookie on success. Repeated failures from one client are throttled.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.PasswordRequest true "Password"
// @Success 200 {object} models.PasswordResponse
// @Failure 400 {object} models.PasswordResponse "Missing password"
// @Failure 429 {object} models.PasswordResponse "Too many attempts"
// @Router /validate-password [post]
func (h *AuthHandler) ValidatePassword(c *fiber.Ctx) error {
	var req models.PasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.PasswordResponse{Message: msgInvalidRequest})
	}

	clientKey := middleware.ClientKey(c)
	res, err := h.gate.Validate(c.UserContext(), req.Password, clientKey)
	if errors.Is(err, gate.ErrMissingSecret) {
		return c.Status(fiber.StatusBadRequest).JSON(models.PasswordResponse{Message: msgPasswordRequired})
	}
	if err != nil {
		return sendError(c, err)
	}

	if !res.Allowed {
		retryAfter := res.RetryAfterSeconds()
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(models.PasswordResponse{
			Message:           fmt.Sprintf("Too many attempts. Please try again in %d seconds.", retryAfter),
			RetryAfterSeconds: retryAfter,
		})
	}

	if !res.Authenticated {
		return c.JSON(models.PasswordResponse{Message: msgIncorrect})
	}

	if err := h.session.Issue(c); err != nil {
		return sendError(c, err)
	}

	return c.JSON(models.PasswordResponse{
		Success: true,
		Message: msgAccessGranted,
	})
}

// CheckAuth reports whether the caller holds a valid session
// @Summary Check session
// @Description Reports whether the session cookie is valid. guest=true bypasses the check.
// @Tags Auth
// @Produce json
// @Param guest query bool false "Guest access"
// @Success 200 {object} models.AuthStatusResponse
// @Router /check-auth [get]
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	if c.QueryBool("guest") {
		return c.JSON(models.AuthStatusResponse{Authenticated: true, Guest: true})
	}

	err := h.session.Verify(c)
	if err != nil && !errors.Is(err, middleware.ErrNoSession) {
		h.logger.WithError(err).Debug("Rejected session cookie")
	}

	return c.JSON(models.AuthStatusResponse{Authenticated: err == nil})
}
