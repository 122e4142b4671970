package registration

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// CategoryTally counts registrations per bird category.
type CategoryTally struct {
	store  Store
	logger *logrus.Logger
}

func NewCategoryTally(store Store, logger *logrus.Logger) *CategoryTally {
	return &CategoryTally{store: store, logger: logger}
}

// Tally returns the current headcount per category. Records without a
// category are skipped. A failed scan yields an empty map.
func (t *CategoryTally) Tally(ctx context.Context) map[string]int {
	counts := make(map[string]int)

	recs, err := t.store.ListRegistrations(ctx)
	if err != nil {
		t.logger.WithError(err).Warn("Category tally unavailable, continuing without balancing data")
		return counts
	}

	for _, r := range Active(t.store.CollectionID(), recs) {
		if r.Category == "" {
			continue
		}
		counts[r.Category]++
	}
	return counts
}

// Count returns the number of registrations in the collection.
func (t *CategoryTally) Count(ctx context.Context) (int, error) {
	recs, err := t.store.ListRegistrations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return len(Active(t.store.CollectionID(), recs)), nil
}
