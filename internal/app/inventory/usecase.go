package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var (
	ErrInvalidRequest  = errors.New("invalid inventory request")
	ErrItemUnavailable = fmt.Errorf("%w: item not held in that quantity", interaction.ErrRejected)
)

type UseCase struct {
	Runner  interaction.Runner
	Catalog ports.CatalogProvider
	Ledger  companion.EconomyLedger
}

// Use consumes held items and applies their catalog effects. Items missing
// from the catalog are consumed without effect.
func (u UseCase) Use(ctx context.Context, req UseRequest) (Response, error) {
	req.Item = strings.TrimSpace(req.Item)
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if strings.TrimSpace(req.UserID) == "" || req.Item == "" || req.Quantity < 0 {
		return Response{}, ErrInvalidRequest
	}
	var item companion.CatalogItem
	if u.Catalog != nil {
		catalog, err := u.Catalog.Catalog(ctx)
		if err != nil {
			return Response{}, err
		}
		if found, ok := catalog.Find(req.Item); ok {
			item = found
		}
	}
	if item.Name == "" {
		item = companion.CatalogItem{Name: req.Item}
	}

	var result companion.ActionEffectResult
	out, err := u.Runner.Run(ctx, req.UserID, "use_item", func(s *interaction.Session) error {
		next, ok := u.Ledger.UseItem(s.State, item.Name, req.Quantity, s.Now)
		if !ok {
			return fmt.Errorf("%w: %s x%d", ErrItemUnavailable, item.Name, req.Quantity)
		}
		next, result = companion.ApplyItemEffects(next, item, req.Quantity)
		s.State = next
		s.Emit(companion.DomainEvent{
			Type:       companion.EventItemUsed,
			OccurredAt: s.Now,
			Payload: map[string]any{
				"item":        item.Name,
				"quantity":    req.Quantity,
				"stats_after": next.Stats.AsMap(),
			},
		})
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Snapshot: out.State.Snapshot(), Result: result}, nil
}
