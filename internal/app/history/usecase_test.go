package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/memory"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seededUseCase(t *testing.T) UseCase {
	t.Helper()
	repo := memory.NewEventRepo(memory.NewStore())
	err := repo.Append(context.Background(), "u-1", []companion.DomainEvent{
		{Type: companion.EventCompanionCreated, OccurredAt: base},
		{Type: companion.EventActionApplied, OccurredAt: base.Add(time.Hour), Payload: map[string]any{
			"stats_after": map[string]any{"coffee": float64(90), "sleep": float64(10), "mood": float64(85)},
		}},
		{Type: companion.EventStatsDecayed, OccurredAt: base.Add(3 * time.Hour), Payload: map[string]any{
			"stats_after": map[string]int{"coffee": 60, "sleep": 40, "mood": 70, "appetite": 75, "energy": 50, "fluffiness": 80},
		}},
		{Type: companion.EventGoldEarned, OccurredAt: base.Add(4 * time.Hour), Payload: map[string]any{"amount": 5}},
	})
	if err != nil {
		t.Fatalf("seed events: %v", err)
	}
	return UseCase{Events: repo}
}

func TestUseCase_ReturnsNewestFirstWithLatestStats(t *testing.T) {
	uc := seededUseCase(t)

	out, err := uc.Execute(context.Background(), Request{UserID: "u-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out.Events) != 4 || out.Events[0].Type != companion.EventGoldEarned {
		t.Fatalf("unexpected events: %+v", out.Events)
	}
	if out.LatestStats == nil || out.LatestStats.Coffee != 60 || out.LatestStats.Fluffiness != 80 {
		t.Fatalf("expected stats from the decay event, got %+v", out.LatestStats)
	}
}

func TestUseCase_FiltersByOccurredTimeWindow(t *testing.T) {
	uc := seededUseCase(t)

	out, err := uc.Execute(context.Background(), Request{
		UserID:       "u-1",
		OccurredFrom: base.Add(30 * time.Minute),
		OccurredTo:   base.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].Type != companion.EventActionApplied {
		t.Fatalf("expected only the action event, got %+v", out.Events)
	}
	if out.LatestStats == nil || out.LatestStats.Coffee != 90 || out.LatestStats.Mood != 85 {
		t.Fatalf("expected stats from the action event, got %+v", out.LatestStats)
	}
}

func TestUseCase_UnknownUserHasEmptyHistory(t *testing.T) {
	uc := UseCase{Events: memory.NewEventRepo(memory.NewStore())}

	out, err := uc.Execute(context.Background(), Request{UserID: "ghost"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Events == nil || len(out.Events) != 0 || out.LatestStats != nil {
		t.Fatalf("expected empty history, got %+v", out)
	}
}

func TestUseCase_RejectsInvertedWindow(t *testing.T) {
	uc := seededUseCase(t)
	_, err := uc.Execute(context.Background(), Request{UserID: "u-1", OccurredFrom: base.Add(time.Hour), OccurredTo: base})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_WindowAppliesBeforeLimit(t *testing.T) {
	repo := memory.NewEventRepo(memory.NewStore())
	var events []companion.DomainEvent
	for i := 0; i < 10; i++ {
		events = append(events, companion.DomainEvent{
			Type:       companion.EventActionApplied,
			OccurredAt: base.Add(time.Duration(i) * 6 * time.Minute),
			Payload:    map[string]any{"stats_after": map[string]int{"coffee": 10 + i}},
		})
	}
	later := base.Add(48 * time.Hour)
	for i := 0; i < DefaultLimit+10; i++ {
		events = append(events, companion.DomainEvent{
			Type:       companion.EventGoldEarned,
			OccurredAt: later.Add(time.Duration(i) * time.Minute),
		})
	}
	if err := repo.Append(context.Background(), "u-1", events); err != nil {
		t.Fatalf("seed events: %v", err)
	}

	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{
		UserID:       "u-1",
		OccurredFrom: base,
		OccurredTo:   base.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := len(out.Events), 10; got != want {
		t.Fatalf("events in window: got %d, want %d", got, want)
	}
	if out.LatestStats == nil || out.LatestStats.Coffee != 19 {
		t.Fatalf("expected stats from the newest in-window event, got %+v", out.LatestStats)
	}
}
