// Package mailer sends the registration confirmation email over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/models"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mailer is not configured")

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	sender  Sender
	mail    config.MailConfig
	payment config.PaymentConfig
	baseURL string
	logger  *logrus.Logger
}

// New creates a Mailer that dials the configured SMTP server.
func New(cfg *config.Config, logger *logrus.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password)
	return NewWithSender(dialer, cfg, logger)
}

// NewWithSender creates a Mailer that delivers through sender.
func NewWithSender(sender Sender, cfg *config.Config, logger *logrus.Logger) *Mailer {
	return &Mailer{
		sender:  sender,
		mail:    cfg.Mail,
		payment: cfg.Payment,
		baseURL: cfg.Server.BaseURL,
		logger:  logger,
	}
}

func (m *Mailer) Configured() bool {
	return m.mail.Configured()
}

// SendConfirmation sends the welcome email and returns its Message-ID.
func (m *Mailer) SendConfirmation(ctx context.Context, req models.ConfirmationRequest) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(req.Email) == "" {
		return "", fmt.Errorf("recipient email is required")
	}

	ctx, span := middleware.StartSpan(ctx, "mailer.send_confirmation")
	defer span.End()

	body, err := renderConfirmation(req, m.baseURL, m.payment)
	if err != nil {
		middleware.RecordError(span, err)
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(m.mail.User))

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.mail.User, m.mail.FromName)
	msg.SetHeader("To", req.Email)
	if m.payment.ContactEmail != "" {
		msg.SetHeader("Reply-To", m.payment.ContactEmail)
	}
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", body)

	start := time.Now()
	err = m.send(ctx, msg)
	metrics.RecordUpstreamCall("smtp", "send_confirmation", err, time.Since(start))
	if err != nil {
		middleware.RecordError(span, err)
		return "", fmt.Errorf("failed to send confirmation email: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"submission_id": req.SubmissionID,
		"message_id":    messageID,
	}).Debug("Confirmation email delivered to SMTP server")

	return messageID, nil
}

// send runs the blocking SMTP exchange and stops waiting once ctx is done.
func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func domainOf(address string) string {
	if _, domain, ok := strings.Cut(address, "@"); ok && domain != "" {
		return domain
	}
	return "ventara.local"
}
