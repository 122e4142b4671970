package registration

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/telemetry"
)

const testCollection = "26732652a3f3817b9ba5ca78b8725aca"

type fakeStore struct {
	mu        sync.Mutex
	records   []StoredRegistration
	created   []models.RegistrationRecord
	listErr   error
	createErr error
	listCalls int
}

func (s *fakeStore) ListRegistrations(context.Context) ([]StoredRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]StoredRegistration(nil), s.records...), nil
}

func (s *fakeStore) CreateRegistration(_ context.Context, rec models.RegistrationRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, rec)
	id := "page-" + rec.SubmissionID
	s.records = append(s.records, StoredRegistration{
		ID:           id,
		CollectionID: testCollection,
		Title:        rec.SubmissionID,
		Email:        rec.Identity.Email,
		Category:     rec.BirdCategory,
	})
	return id, nil
}

func (s *fakeStore) CollectionID() string { return testCollection }

type fakeNotifier struct {
	mu         sync.Mutex
	configured bool
	err        error
	sent       []models.ConfirmationRequest
	block      chan struct{}
	ctxErr     error
}

func (n *fakeNotifier) Configured() bool { return n.configured }

func (n *fakeNotifier) SendConfirmation(ctx context.Context, req models.ConfirmationRequest) (string, error) {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ctxErr = ctx.Err()
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, req)
	return "<msg-1@ventara>", nil
}

type capturedEvent struct {
	message string
	err     error
	level   telemetry.Level
	event   telemetry.Event
}

type fakeReporter struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (r *fakeReporter) CaptureMessage(message string, level telemetry.Level, ev telemetry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, capturedEvent{message: message, level: level, event: ev})
}

func (r *fakeReporter) CaptureError(err error, level telemetry.Level, ev telemetry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, capturedEvent{err: err, level: level, event: ev})
}

func (r *fakeReporter) Flush(time.Duration) bool { return true }

func (r *fakeReporter) all() []capturedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedEvent(nil), r.events...)
}

var errStoreDown = errors.New("notion: 502 bad gateway")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func samplePayload(email string) models.RegistrationPayload {
	return models.RegistrationPayload{
		Identity: models.Identity{
			FirstName:       "Ada",
			LastName:        "Lovelace",
			Email:           email,
			Phone:           "+41 79 000 00 00",
			ReferredBy:      "Charles",
			PreviousVoyages: "2",
			GenderIdentity:  "woman",
		},
		Logistics: models.Logistics{
			Nights:              []string{models.NightFriday, models.NightSaturday},
			Transportation:      "train",
			City:                "Zug",
			Country:             "Switzerland",
			SleepingArrangement: "tent",
		},
		Contribution: models.Contribution{ContributionAmount: "150"},
		BirdCategory: "Night Birds",
	}
}
