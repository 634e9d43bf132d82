package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/gorm/model"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, userID string, events []companion.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DomainEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.Type, err)
		}
		rows = append(rows, model.DomainEvent{
			ID:         uuid.New(),
			UserID:     userID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByUserID returns the newest matching events first. seq breaks ties
// between events of one interaction, which share occurred_at.
func (r EventRepo) ListByUserID(ctx context.Context, userID string, q ports.EventQuery) ([]companion.DomainEvent, error) {
	rows := []model.DomainEvent{}
	query := getDBFromCtx(ctx, r.db).Where(&model.DomainEvent{UserID: userID})
	if !q.OccurredFrom.IsZero() {
		query = query.Where("occurred_at >= ?", q.OccurredFrom)
	}
	if !q.OccurredTo.IsZero() {
		query = query.Where("occurred_at <= ?", q.OccurredTo)
	}
	query = query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "occurred_at"}, Desc: true},
			{Column: clause.Column{Name: "seq"}, Desc: true},
		},
	})
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]companion.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode %s payload: %w", row.Type, err)
			}
		}
		out = append(out, companion.DomainEvent{
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
