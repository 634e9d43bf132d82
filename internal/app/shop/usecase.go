package shop

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
	ErrInvalidRequest   = errors.New("invalid shop request")
	ErrInsufficientGold = fmt.Errorf("%w: insufficient gold", interaction.ErrRejected)
	ErrInvalidPrice     = errors.New("catalog item has an invalid price")
)

const MaxQuantityPerPurchase = 99

type UseCase struct {
	Runner  interaction.Runner
	Catalog ports.CatalogProvider
	Ledger  companion.EconomyLedger
}

func (u UseCase) ListCatalog(ctx context.Context) (CatalogResponse, error) {
	items, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return CatalogResponse{}, err
	}
	return CatalogResponse{Items: items}, nil
}

// Buy debits the full price and adds the items. The gold floor is enforced
// here, not in the ledger.
func (u UseCase) Buy(ctx context.Context, req BuyRequest) (Response, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Item) == "" ||
		req.Quantity < 0 || req.Quantity > MaxQuantityPerPurchase {
		return Response{}, ErrInvalidRequest
	}
	catalog, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, err
	}
	item, ok := catalog.Find(req.Item)
	if !ok {
		return Response{}, companion.ErrUnknownItem
	}
	if item.Price <= 0 || item.Price > companion.MaxItemPrice {
		return Response{}, fmt.Errorf("%w: %s costs %d", ErrInvalidPrice, item.Name, item.Price)
	}
	total := item.Price * req.Quantity

	out, err := u.Runner.Run(ctx, req.UserID, "buy", func(s *interaction.Session) error {
		if s.State.Gold < total {
			return fmt.Errorf("%w: need %d, have %d", ErrInsufficientGold, total, s.State.Gold)
		}
		next, _ := u.Ledger.AddGold(s.State, -total, "shop:"+item.Name, s.Now)
		next, events := u.Ledger.UpdateInventory(next, companion.InventoryChange{
			ItemName:  item.Name,
			Quantity:  req.Quantity,
			Category:  item.Category,
			Rarity:    item.Rarity,
			UnitPrice: item.Price,
		}, s.Now)
		s.State = next
		s.MarkChanged()
		s.Emit(events...)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Snapshot: out.State.Snapshot(), Spent: total}, nil
}

// Grant credits gold earned outside the shop, e.g. chat mini-games.
func (u UseCase) Grant(ctx context.Context, req GrantRequest) (Response, error) {
	req.Source = strings.TrimSpace(req.Source)
	if strings.TrimSpace(req.UserID) == "" || req.Amount <= 0 || req.Amount > companion.MaxGoldGrant || req.Source == "" {
		return Response{}, ErrInvalidRequest
	}
	out, err := u.Runner.Run(ctx, req.UserID, "grant", func(s *interaction.Session) error {
		next, events := u.Ledger.AddGold(s.State, req.Amount, req.Source, s.Now)
		s.State = next
		s.Emit(events...)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Snapshot: out.State.Snapshot(), Granted: req.Amount}, nil
}
