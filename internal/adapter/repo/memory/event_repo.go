package memory

import (
	"context"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, userID string, events []companion.DomainEvent) error {
	defer r.store.lock(ctx, true)()
	r.store.events[userID] = append(r.store.events[userID], events...)
	return nil
}

// ListByUserID returns the newest matching events first.
func (r EventRepo) ListByUserID(ctx context.Context, userID string, q ports.EventQuery) ([]companion.DomainEvent, error) {
	defer r.store.lock(ctx, false)()
	stored := r.store.events[userID]
	out := []companion.DomainEvent{}
	for i := len(stored) - 1; i >= 0; i-- {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		if q.Matches(stored[i].OccurredAt) {
			out = append(out, stored[i])
		}
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
