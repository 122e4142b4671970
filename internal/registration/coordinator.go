// Package registration accepts registration submissions and derives the
// per-category headcount from the registration store.
package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/telemetry"
	apperrors "github.com/mettaway/ventara/pkg/errors"
)

const (
	DuplicateMessage = "A registration with this email already exists. Please check your inbox for a confirmation email, or contact us if you need to make changes to your registration."
	DuplicateDetails = "Duplicate registration attempt detected"
)

// Notifier sends the confirmation email.
type Notifier interface {
	Configured() bool
	SendConfirmation(ctx context.Context, req models.ConfirmationRequest) (string, error)
}

// DuplicateError reports an existing registration for the submitted email.
// RecordID is empty when the store rejected the write instead of the scan
// finding it.
type DuplicateError struct {
	Email    string
	RecordID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("registration for %s already exists", e.Email)
}

// Result identifies a persisted registration.
type Result struct {
	SubmissionID string
	RecordID     string
}

type Coordinator struct {
	store        Store
	notifier     Notifier
	reporter     telemetry.Reporter
	logger       *logrus.Logger
	emailTimeout time.Duration
	now          func() time.Time
	newID        func() string

	inflight sync.WaitGroup
}

type CoordinatorOption func(*Coordinator)

// WithEmailTimeout bounds each detached confirmation send.
func WithEmailTimeout(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.emailTimeout = d }
}

// WithIDGenerator replaces uuid.NewString for submission IDs.
func WithIDGenerator(fn func() string) CoordinatorOption {
	return func(c *Coordinator) { c.newID = fn }
}

func WithNow(fn func() time.Time) CoordinatorOption {
	return func(c *Coordinator) { c.now = fn }
}

// NewCoordinator wires the coordinator. notifier may be nil when mail is
// not set up.
func NewCoordinator(store Store, notifier Notifier, reporter telemetry.Reporter, logger *logrus.Logger, opts ...CoordinatorOption) *Coordinator {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	c := &Coordinator{
		store:        store,
		notifier:     notifier,
		reporter:     reporter,
		logger:       logger,
		emailTimeout: 30 * time.Second,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates, deduplicates and persists one registration, then sends
// the confirmation email in the background. Returned errors are
// *apperrors.AppError; a duplicate carries a *DuplicateError cause.
func (c *Coordinator) Submit(ctx context.Context, payload models.RegistrationPayload) (Result, error) {
	if err := payload.Validate(); err != nil {
		return Result{}, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid registration", err).WithDetails(err.Error())
	}

	email := payload.Identity.Email
	log := c.logger.WithField("email", email)

	existing, err := c.findExisting(ctx, email)
	if err != nil {
		return Result{}, c.fail(err, email, "")
	}
	if existing != nil {
		return Result{}, c.duplicate(log, email, existing.ID)
	}

	rec := models.RegistrationRecord{
		SubmissionID:        c.newID(),
		SubmittedAt:         c.now().UTC(),
		RegistrationPayload: payload,
	}

	recordID, err := c.store.CreateRegistration(ctx, rec)
	if errors.Is(err, ErrContactExists) {
		return Result{}, c.duplicate(log, email, "")
	}
	if err != nil {
		return Result{}, c.fail(err, email, rec.SubmissionID)
	}

	metrics.RecordRegistration("created")
	logging.WithSubmission(c.logger, rec.SubmissionID, email).WithFields(logrus.Fields{
		"record_id":     recordID,
		"bird_category": payload.BirdCategory,
	}).Info("Registration stored")

	c.sendConfirmation(ctx, rec)

	return Result{SubmissionID: rec.SubmissionID, RecordID: recordID}, nil
}

// Wait blocks until every in-flight confirmation email has finished.
func (c *Coordinator) Wait() {
	c.inflight.Wait()
}

func (c *Coordinator) findExisting(ctx context.Context, email string) (*StoredRegistration, error) {
	recs, err := c.store.ListRegistrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan registrations: %w", err)
	}
	for _, r := range Active(c.store.CollectionID(), recs) {
		if r.Email == email {
			return &r, nil
		}
	}
	return nil, nil
}

func (c *Coordinator) duplicate(log *logrus.Entry, email, recordID string) error {
	metrics.RecordRegistration("duplicate")
	log.WithField("existing_record_id", recordID).Info("Duplicate registration attempt")

	c.reporter.CaptureMessage("Duplicate registration attempt", telemetry.LevelInfo, telemetry.Event{
		Tags: map[string]string{
			"errorType": "duplicate_registration",
			"endpoint":  "submit_registration",
		},
		Extra: map[string]interface{}{
			"email":          email,
			"existingPageId": recordID,
		},
		UserEmail: email,
	})

	return apperrors.NewAppError(apperrors.CodeDuplicateRegistration, DuplicateMessage,
		&DuplicateError{Email: email, RecordID: recordID}).WithDetails(DuplicateDetails)
}

func (c *Coordinator) fail(err error, email, submissionID string) error {
	metrics.RecordRegistration("failed")
	c.logger.WithError(err).WithFields(logrus.Fields{
		"email":         email,
		"submission_id": submissionID,
	}).Error("Failed to submit registration")

	c.reporter.CaptureError(err, telemetry.LevelError, telemetry.Event{
		Tags: map[string]string{
			"errorType": "server_error",
			"endpoint":  "submit_registration",
		},
		Extra: map[string]interface{}{
			"errorMessage": err.Error(),
			"submissionId": submissionID,
		},
	})

	return apperrors.NewAppError(apperrors.CodeUpstreamFailure, "Failed to submit registration", err)
}

// sendConfirmation never affects the submission outcome.
func (c *Coordinator) sendConfirmation(ctx context.Context, rec models.RegistrationRecord) {
	if c.notifier == nil || !c.notifier.Configured() {
		metrics.RecordConfirmationEmail("skipped")
		c.logger.Info("Skipping confirmation email: mail credentials not configured")
		return
	}

	req := models.ConfirmationRequest{
		FirstName:    rec.Identity.FirstName,
		LastName:     rec.Identity.LastName,
		Email:        rec.Identity.Email,
		SubmissionID: rec.SubmissionID,
		Category:     rec.BirdCategory,
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.emailTimeout)
		defer cancel()

		emailID, err := c.notifier.SendConfirmation(sendCtx, req)
		if err != nil {
			metrics.RecordConfirmationEmail("failed")
			logging.WithSubmission(c.logger, req.SubmissionID, req.Email).WithError(err).
				Warn("Failed to send confirmation email, but registration succeeded")
			c.reporter.CaptureError(err, telemetry.LevelWarning, telemetry.Event{
				Tags: map[string]string{
					"errorType": "email_error",
					"endpoint":  "submit_registration",
				},
				Extra: map[string]interface{}{
					"email":        req.Email,
					"submissionId": req.SubmissionID,
					"errorMessage": err.Error(),
				},
			})
			return
		}

		metrics.RecordConfirmationEmail("sent")
		logging.WithSubmission(c.logger, req.SubmissionID, req.Email).WithField("email_id", emailID).Info("Confirmation email sent")
	}()
}
