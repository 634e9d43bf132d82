package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

	"github.com/google/uuid"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, userID string, events []companion.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	return NewTxManager(r.store).RunInTx(ctx, func(ctx context.Context) error {
		q := r.store.conn(ctx)
		for _, e := range events {
			payload, err := json.Marshal(e.Payload)
			if err != nil {
				return fmt.Errorf("encode %s payload: %w", e.Type, err)
			}
			_, err = q.ExecContext(ctx,
				`INSERT INTO domain_events (id, user_id, type, occurred_at, payload) VALUES (?, ?, ?, ?, ?)`,
				uuid.NewString(), userID, e.Type, toMillis(e.OccurredAt), string(payload),
			)
			if err != nil {
				return fmt.Errorf("insert event %s: %w", e.Type, err)
			}
		}
		return nil
	})
}

// ListByUserID returns the newest matching events first. Events sharing a
// timestamp come back in reverse insertion order.
func (r EventRepo) ListByUserID(ctx context.Context, userID string, q ports.EventQuery) ([]companion.DomainEvent, error) {
	query := `SELECT type, occurred_at, payload FROM domain_events WHERE user_id = ?`
	args := []any{userID}
	if !q.OccurredFrom.IsZero() {
		query += ` AND occurred_at >= ?`
		args = append(args, toMillis(q.OccurredFrom))
	}
	if !q.OccurredTo.IsZero() {
		query += ` AND occurred_at <= ?`
		args = append(args, toMillis(q.OccurredTo))
	}
	query += ` ORDER BY occurred_at DESC, rowid DESC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}
	rows, err := r.store.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := []companion.DomainEvent{}
	for rows.Next() {
		var (
			e       companion.DomainEvent
			at      int64
			payload []byte
		)
		if err := rows.Scan(&e.Type, &at, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.OccurredAt = fromMillis(at)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Payload); err != nil {
				return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
