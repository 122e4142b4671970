package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/config"
	apperrors "github.com/mettaway/ventara/pkg/errors"
)

const (
	sessionIssuer   = "ventara"
	sessionAudience = "ventara-registration"
	sessionSubject  = "gate"
)

// ErrNoSession is returned when the request carries no session cookie.
var ErrNoSession = errors.New("no session cookie")

// SessionManager issues and verifies the signed cookie set after the gate
// password was accepted.
type SessionManager struct {
	config *config.SessionConfig
	secure bool
	logger *logrus.Logger
	now    func() time.Time
}

func NewSessionManager(cfg *config.SessionConfig, secure bool, logger *logrus.Logger) *SessionManager {
	return &SessionManager{
		config: cfg,
		secure: secure,
		logger: logger,
		now:    time.Now,
	}
}

// Issue signs a new session token and sets it as an HttpOnly cookie.
func (s *SessionManager) Issue(c *fiber.Ctx) error {
	token, err := s.sign()
	if err != nil {
		return apperrors.NewAppError(apperrors.CodeInternalError, "Failed to create session", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.config.AuthCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.Lifetime.Seconds()),
		Expires:  s.now().Add(s.config.Lifetime),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// MarkRegistered sets the client-readable "registered" marker cookie.
func (s *SessionManager) MarkRegistered(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.RegisterCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(s.config.RegisteredTTL.Seconds()),
		Expires:  s.now().Add(s.config.RegisteredTTL),
		Secure:   s.secure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Verify checks the session cookie on c.
func (s *SessionManager) Verify(c *fiber.Ctx) error {
	raw := c.Cookies(s.config.AuthCookie)
	if raw == "" {
		return ErrNoSession
	}
	return s.validate(raw)
}

// RequireSession rejects requests without a valid session cookie.
func (s *SessionManager) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.Verify(c); err != nil {
			s.logger.WithError(err).WithField("path", c.Path()).Debug("Session validation failed")
			return apperrors.NewAppError(apperrors.CodeUnauthenticated, "Please enter the password first", err)
		}
		return c.Next()
	}
}

func (s *SessionManager) sign() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   sessionSubject,
		Audience:  jwt.ClaimStrings{sessionAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *SessionManager) validate(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("token is invalid")
	}
	return nil
}
