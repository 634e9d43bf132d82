package ports

import (
	"context"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

// CompanionRepository persists the whole aggregate, inventory included.
// Load returns ErrNotFound for unknown users and an error wrapping ErrCorrupted
// when the stored document cannot be read.
type CompanionRepository interface {
	Load(ctx context.Context, userID string) (companion.State, error)
	SaveWithVersion(ctx context.Context, state companion.State, expectedVersion int64) error
}

type EventRepository interface {
	Append(ctx context.Context, userID string, events []companion.DomainEvent) error
	ListByUserID(ctx context.Context, userID string, q EventQuery) ([]companion.DomainEvent, error)
}

// EventQuery narrows a listing. The time bounds are inclusive and applied
// before Limit; zero values leave that side open.
type EventQuery struct {
	Limit        int
	OccurredFrom time.Time
	OccurredTo   time.Time
}

// Matches reports whether at falls inside the query window.
func (q EventQuery) Matches(at time.Time) bool {
	if !q.OccurredFrom.IsZero() && at.Before(q.OccurredFrom) {
		return false
	}
	if !q.OccurredTo.IsZero() && at.After(q.OccurredTo) {
		return false
	}
	return true
}

type CatalogProvider interface {
	Catalog(ctx context.Context) (companion.Catalog, error)
}
