package history

import (
	"context"
	"errors"
	"strings"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var ErrInvalidRequest = errors.New("invalid history request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.UserID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if !req.OccurredFrom.IsZero() && !req.OccurredTo.IsZero() && req.OccurredTo.Before(req.OccurredFrom) {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	events, err := u.Events.ListByUserID(ctx, req.UserID, ports.EventQuery{
		Limit:        limit,
		OccurredFrom: req.OccurredFrom,
		OccurredTo:   req.OccurredTo,
	})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Events: []companion.DomainEvent{}}, nil
		}
		return Response{}, err
	}
	return Response{Events: events, LatestStats: reconstruct(events)}, nil
}

// reconstruct expects events newest first, the order repositories return.
func reconstruct(events []companion.DomainEvent) *companion.Stats {
	for _, evt := range events {
		after, ok := asMap(evt.Payload["stats_after"])
		if !ok {
			continue
		}
		stats := companion.Stats{}
		for _, k := range companion.AllStats {
			stats.Set(k, int(num(after[string(k)])))
		}
		return &stats
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]int:
		out := make(map[string]any, len(m))
		for k, n := range m {
			out[k] = n
		}
		return out, true
	default:
		return nil, false
	}
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
