package action

import (
	"context"
	"testing"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/memory"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/shared/keylock"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

type fixture struct {
	store  *memory.Store
	repo   memory.CompanionRepo
	events memory.EventRepo
	uc     UseCase
}

func newFixture() fixture {
	store := memory.NewStore()
	f := fixture{
		store:  store,
		repo:   memory.NewCompanionRepo(store),
		events: memory.NewEventRepo(store),
	}
	f.uc = UseCase{Runner: interaction.Runner{
		TxManager:  memory.NewTxManager(store),
		Companions: f.repo,
		Events:     f.events,
		Locks:      keylock.New(),
		Rand:       zeroRand{},
		Now:        func() time.Time { return testNow },
	}}
	return f
}

func (f fixture) seed(t *testing.T, mutate func(*companion.State)) {
	t.Helper()
	s := companion.State{
		UserID:     "u-1",
		Name:       "Ember",
		Stats:      companion.DefaultStats,
		Character:  companion.Character{Primary: companion.TraitCurious},
		Level:      1,
		Gold:       50,
		Inventory:  companion.Inventory{},
		LastUpdate: testNow,
		CreatedAt:  testNow,
		Version:    1,
	}
	if mutate != nil {
		mutate(&s)
	}
	if err := f.repo.SaveWithVersion(context.Background(), s, 0); err != nil {
		t.Fatalf("seed companion: %v", err)
	}
}

func (f fixture) eventTypes(t *testing.T) []string {
	t.Helper()
	events, err := f.events.ListByUserID(context.Background(), "u-1", ports.EventQuery{})
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
