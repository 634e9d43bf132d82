package interaction

import (
	"context"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubCompanionRepo struct {
	byUser   map[string]companion.State
	loadErr  error
	saveErr  error
	saves    int
	expected []int64
}

func (r *stubCompanionRepo) Load(_ context.Context, userID string) (companion.State, error) {
	if r.loadErr != nil {
		return companion.State{}, r.loadErr
	}
	s, ok := r.byUser[userID]
	if !ok {
		return companion.State{}, ports.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *stubCompanionRepo) SaveWithVersion(_ context.Context, state companion.State, expectedVersion int64) error {
	r.expected = append(r.expected, expectedVersion)
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	if r.byUser == nil {
		r.byUser = map[string]companion.State{}
	}
	r.byUser[state.UserID] = state.Clone()
	return nil
}

type stubEventRepo struct {
	appended []companion.DomainEvent
	err      error
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []companion.DomainEvent) error {
	if r.err != nil {
		return r.err
	}
	r.appended = append(r.appended, events...)
	return nil
}

func (r *stubEventRepo) ListByUserID(context.Context, string, ports.EventQuery) ([]companion.DomainEvent, error) {
	return r.appended, nil
}

type stubMetrics struct {
	success   map[string]int
	rejected  map[string]int
	conflict  int
	failure   int
	recovered int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{success: map[string]int{}, rejected: map[string]int{}}
}

func (m *stubMetrics) RecordSuccess(kind string)  { m.success[kind]++ }
func (m *stubMetrics) RecordRejected(kind string) { m.rejected[kind]++ }
func (m *stubMetrics) RecordConflict()            { m.conflict++ }
func (m *stubMetrics) RecordFailure()             { m.failure++ }
func (m *stubMetrics) RecordRecovered()           { m.recovered++ }

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func storedState(userID string, lastUpdate time.Time, version int64) companion.State {
	return companion.State{
		UserID:     userID,
		Name:       "Ember",
		Stats:      companion.DefaultStats,
		Character:  companion.Character{Primary: companion.TraitCurious},
		Level:      1,
		Gold:       50,
		Inventory:  companion.Inventory{},
		Habits:     []companion.Habit{},
		LastUpdate: lastUpdate,
		CreatedAt:  lastUpdate,
		Version:    version,
	}
}

func newRunner(repo ports.CompanionRepository, events ports.EventRepository, metrics ports.InteractionMetrics) Runner {
	return Runner{
		TxManager:  stubTxManager{},
		Companions: repo,
		Events:     events,
		Metrics:    metrics,
		Rand:       zeroRand{},
		Now:        func() time.Time { return testNow },
	}
}

func eventTypes(events []companion.DomainEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func hasEvent(events []companion.DomainEvent, typ string) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}
