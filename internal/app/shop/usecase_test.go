package shop

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

func TestUseCase_BuyDebitsGoldAndAddsItems(t *testing.T) {
	f := newFixture()
	f.seed(t, nil)

	out, err := f.uc.Buy(context.Background(), BuyRequest{UserID: "u-1", Item: "Cookie", Quantity: 3})
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if out.Spent != 15 || out.Snapshot.Gold != 35 {
		t.Fatalf("expected 15 spent leaving 35 gold, got spent=%d gold=%d", out.Spent, out.Snapshot.Gold)
	}
	if len(out.Snapshot.Inventory) != 1 || out.Snapshot.Inventory[0].ItemName != "cookie" || out.Snapshot.Inventory[0].Quantity != 3 {
		t.Fatalf("unexpected inventory: %+v", out.Snapshot.Inventory)
	}
	p := out.Snapshot.Purchases
	if p.TotalSpent != 15 || p.PurchaseCount != 1 || len(p.History) != 1 {
		t.Fatalf("unexpected purchase stats: %+v", p)
	}

	stored, err := f.repo.Load(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Gold != 35 || stored.Inventory.Quantity("cookie") != 3 || stored.Version != 2 {
		t.Fatalf("expected purchase persisted atomically, got %+v", stored)
	}
	if types := f.eventTypes(t); !slices.Contains(types, companion.EventItemPurchased) {
		t.Fatalf("expected item_purchased event, got %v", types)
	}
}

func TestUseCase_BuyRejectsInsufficientGold(t *testing.T) {
	f := newFixture()
	f.seed(t, func(s *companion.State) { s.Gold = 10 })

	_, err := f.uc.Buy(context.Background(), BuyRequest{UserID: "u-1", Item: "star lantern"})
	if !errors.Is(err, ErrInsufficientGold) || !errors.Is(err, interaction.ErrRejected) {
		t.Fatalf("expected insufficient gold rejection, got %v", err)
	}
	stored, _ := f.repo.Load(context.Background(), "u-1")
	if stored.Gold != 10 || len(stored.Inventory) != 0 || stored.Version != 1 {
		t.Fatalf("expected companion untouched, got %+v", stored)
	}
}

func TestUseCase_BuyUnknownItem(t *testing.T) {
	f := newFixture()
	f.seed(t, nil)

	_, err := f.uc.Buy(context.Background(), BuyRequest{UserID: "u-1", Item: "dragon egg"})
	if !errors.Is(err, companion.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestUseCase_BuyValidatesQuantity(t *testing.T) {
	f := newFixture()
	for _, qty := range []int{-1, MaxQuantityPerPurchase + 1} {
		_, err := f.uc.Buy(context.Background(), BuyRequest{UserID: "u-1", Item: "cookie", Quantity: qty})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for quantity %d, got %v", qty, err)
		}
	}
}

func TestUseCase_GrantCreditsGold(t *testing.T) {
	f := newFixture()
	f.seed(t, nil)

	out, err := f.uc.Grant(context.Background(), GrantRequest{UserID: "u-1", Amount: 25, Source: "trivia"})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if out.Snapshot.Gold != 75 || out.Granted != 25 {
		t.Fatalf("expected 75 gold, got %d", out.Snapshot.Gold)
	}
	events, err := f.events.ListByUserID(context.Background(), "u-1", ports.EventQuery{})
	if err != nil || len(events) == 0 {
		t.Fatalf("expected gold_earned event, err=%v", err)
	}
	if events[0].Type != companion.EventGoldEarned || events[0].Payload["source"] != "trivia" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestUseCase_GrantRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture()
	if _, err := f.uc.Grant(context.Background(), GrantRequest{UserID: "u-1", Amount: 0, Source: "x"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_GrantRejectsAmountAboveCap(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Grant(context.Background(), GrantRequest{UserID: "u-1", Amount: companion.MaxGoldGrant + 1, Source: "x"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if types := f.eventTypes(t); len(types) != 0 {
		t.Fatalf("expected nothing recorded, got %v", types)
	}
}

func TestUseCase_BuyRefusesOverflowingPrice(t *testing.T) {
	f := newFixture()
	f.seed(t, func(s *companion.State) { s.Gold = 10 })
	f.uc.Catalog = staticCatalog{{Name: "crown", Category: "toy", Rarity: companion.RarityLegendary, Price: math.MaxInt / 2}}

	_, err := f.uc.Buy(context.Background(), BuyRequest{UserID: "u-1", Item: "crown", Quantity: 3})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	stored, loadErr := f.repo.Load(context.Background(), "u-1")
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}
	if stored.Gold != 10 || len(stored.Inventory) != 0 {
		t.Fatalf("expected untouched companion, got gold=%d inventory=%v", stored.Gold, stored.Inventory)
	}
}

func TestUseCase_ListCatalog(t *testing.T) {
	f := newFixture()
	out, err := f.uc.ListCatalog(context.Background())
	if err != nil {
		t.Fatalf("list catalog: %v", err)
	}
	if len(out.Items) != len(companion.DefaultCatalog) {
		t.Fatalf("expected %d items, got %d", len(companion.DefaultCatalog), len(out.Items))
	}
}
