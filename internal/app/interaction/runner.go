// Package interaction runs one load → catch-up → mutate → save cycle per user
// call. It owns the per-user lock and the default-substitution policy for
// missing or corrupted companions.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/shared/keylock"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrInvalidRequest = errors.New("invalid interaction request")
	ErrPersistence    = errors.New("companion storage unavailable, try again")
	// ErrRejected marks business rejections; nothing is saved.
	ErrRejected = errors.New("interaction rejected")
)

var tracer = otel.Tracer("github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction")

type Runner struct {
	TxManager    ports.TxManager
	Companions   ports.CompanionRepository
	Events       ports.EventRepository
	Locks        *keylock.Locker
	Metrics      ports.InteractionMetrics
	Rand         companion.Rand
	Decay        companion.DecayEngine
	Now          func() time.Time
	DefaultName  string
	StartingGold int
}

type Session struct {
	UserID    string
	State     companion.State
	Now       time.Time
	Rand      companion.Rand
	Created   bool
	Recovered bool
	Decayed   bool

	events   []companion.DomainEvent
	changed  bool
	discard  bool
	rejected bool
}

// Emit queues events for delivery after a successful save and marks the state changed.
func (s *Session) Emit(events ...companion.DomainEvent) {
	s.events = append(s.events, events...)
	s.changed = true
}

func (s *Session) MarkChanged() { s.changed = true }

// Discard drops every change made in this session, including catch-up bookkeeping.
func (s *Session) Discard() { s.discard = true }

// Reject discards the session and counts the call as a rejection.
func (s *Session) Reject() {
	s.discard = true
	s.rejected = true
}

type Outcome struct {
	State     companion.State
	Created   bool
	Recovered bool
	Saved     bool
	Events    []companion.DomainEvent
}

func (r Runner) Run(ctx context.Context, userID, kind string, fn func(*Session) error) (Outcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Outcome{}, ErrInvalidRequest
	}
	ctx, span := tracer.Start(ctx, "interaction."+kind)
	defer span.End()
	span.SetAttributes(attribute.String("companion.user_id", userID))

	if r.Locks != nil {
		unlock := r.Locks.Lock(userID)
		defer unlock()
	}

	out, rejected, err := r.run(ctx, userID, fn)
	span.SetAttributes(
		attribute.Bool("companion.created", out.Created),
		attribute.Bool("companion.recovered", out.Recovered),
		attribute.Bool("companion.saved", out.Saved),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.recordFailure(kind, err)
		return Outcome{}, err
	}
	if r.Metrics != nil {
		if out.Recovered {
			r.Metrics.RecordRecovered()
		}
		if rejected {
			r.Metrics.RecordRejected(kind)
		} else {
			r.Metrics.RecordSuccess(kind)
		}
	}

	if out.Saved && len(out.Events) > 0 {
		r.publish(ctx, userID, out.Events)
	}
	return out, nil
}

func (r Runner) run(ctx context.Context, userID string, fn func(*Session) error) (Outcome, bool, error) {
	var (
		out      Outcome
		rejected bool
	)
	body := func(txCtx context.Context) error {
		s, expectedVersion, err := r.open(txCtx, userID)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		rejected = s.rejected
		out = Outcome{State: s.State, Created: s.Created, Recovered: s.Recovered}
		if s.discard || !s.changed {
			return nil
		}

		s.State.Version = expectedVersion + 1
		if err := r.Companions.SaveWithVersion(txCtx, s.State, expectedVersion); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return fmt.Errorf("save companion: %w", err)
			}
			return fmt.Errorf("save companion: %w", errors.Join(ErrPersistence, err))
		}
		out.State = s.State
		out.Saved = true
		out.Events = s.events
		return nil
	}

	var err error
	if r.TxManager != nil {
		err = r.TxManager.RunInTx(ctx, body)
	} else {
		err = body(ctx)
	}
	return out, rejected, err
}

// open loads the companion, substitutes a fresh one when missing or
// unreadable, and catches its stats up to now.
func (r Runner) open(ctx context.Context, userID string) (*Session, int64, error) {
	now := r.now()
	s := &Session{UserID: userID, Now: now, Rand: r.Rand}

	state, err := r.Companions.Load(ctx, userID)
	var expectedVersion int64
	switch {
	case err == nil:
		expectedVersion = state.Version
	case errors.Is(err, ports.ErrNotFound):
		state = r.fresh(userID, now)
		s.Created = true
		s.Emit(companion.DomainEvent{
			Type:       companion.EventCompanionCreated,
			OccurredAt: now,
			Payload: map[string]any{
				"name":    state.Name,
				"trait":   string(state.Character.Primary),
				"gold":    state.Gold,
				"version": companion.SchemaVersion,
			},
		})
	case errors.Is(err, ports.ErrCorrupted):
		log.Printf("interaction: replacing unreadable companion user=%s: %v", userID, err)
		var corrupt *ports.CorruptedRecordError
		if errors.As(err, &corrupt) {
			expectedVersion = corrupt.Version
		}
		state = r.fresh(userID, now)
		s.Recovered = true
		s.Emit(companion.DomainEvent{
			Type:       companion.EventCompanionRecovered,
			OccurredAt: now,
			Payload:    map[string]any{"reason": err.Error()},
		})
	default:
		return nil, 0, fmt.Errorf("load companion: %w", errors.Join(ErrPersistence, err))
	}
	state.UserID = userID

	before := state.Stats
	stats, lastUpdate, applied, decayErr := r.Decay.Apply(state.Stats, state.LastUpdate, now)
	if decayErr != nil {
		log.Printf("interaction: stat catch-up fault user=%s: %v", userID, decayErr)
		s.MarkChanged()
	}
	state.Stats, state.LastUpdate = stats, lastUpdate
	if applied {
		s.Decayed = true
		s.Emit(companion.DomainEvent{
			Type:       companion.EventStatsDecayed,
			OccurredAt: now,
			Payload: map[string]any{
				"stats_before": before.AsMap(),
				"stats_after":  stats.AsMap(),
			},
		})
	}
	s.State = state
	return s, expectedVersion, nil
}

func (r Runner) fresh(userID string, now time.Time) companion.State {
	gold := r.StartingGold
	if gold <= 0 {
		gold = companion.DefaultStartingGold
	}
	return companion.NewState(userID, r.DefaultName, gold, now, r.Rand)
}

// publish is fire-and-forget: a failing sink never fails the interaction.
func (r Runner) publish(ctx context.Context, userID string, events []companion.DomainEvent) {
	if r.Events == nil {
		return
	}
	for i := range events {
		if events[i].Payload == nil {
			events[i].Payload = map[string]any{}
		}
		events[i].Payload["user_id"] = userID
	}
	if err := r.Events.Append(ctx, userID, events); err != nil {
		log.Printf("interaction: record events user=%s count=%d: %v", userID, len(events), err)
	}
}

func (r Runner) recordFailure(kind string, err error) {
	if r.Metrics == nil {
		return
	}
	switch {
	case errors.Is(err, ErrRejected):
		r.Metrics.RecordRejected(kind)
	case errors.Is(err, ports.ErrConflict):
		r.Metrics.RecordConflict()
	default:
		r.Metrics.RecordFailure()
	}
}

func (r Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
