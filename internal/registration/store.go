package registration

import (
	"context"
	"errors"

	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/utils"
)

// ErrContactExists is returned by stores that enforce email uniqueness at
// write time.
var ErrContactExists = errors.New("a registration for this contact already exists")

// StoredRegistration is the part of a persisted record needed for duplicate
// detection and tallying.
type StoredRegistration struct {
	ID           string
	CollectionID string
	Title        string
	Email        string
	Category     string
}

// Store is the external registration database.
type Store interface {
	// ListRegistrations returns every record the store can see, across
	// collections and including templates. Callers filter with Active.
	ListRegistrations(ctx context.Context) ([]StoredRegistration, error)
	// CreateRegistration persists rec and returns the store's record ID.
	CreateRegistration(ctx context.Context, rec models.RegistrationRecord) (string, error)
	CollectionID() string
}

// Active keeps the records that belong to collectionID and are not
// templates. Collection IDs are compared with dashes removed.
func Active(collectionID string, recs []StoredRegistration) []StoredRegistration {
	want := utils.StripDashes(collectionID)
	out := make([]StoredRegistration, 0, len(recs))
	for _, r := range recs {
		if r.CollectionID == "" || utils.StripDashes(r.CollectionID) != want {
			continue
		}
		if r.Title == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
