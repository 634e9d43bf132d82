package memory

import (
	"context"
	"sync"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

type storedCompanion struct {
	document []byte
	version  int64
}

// Store keeps companions as encoded documents so loads exercise the same
// decode and migration path as the database adapters.
type Store struct {
	mu         sync.RWMutex
	companions map[string]storedCompanion
	events     map[string][]companion.DomainEvent
}

func NewStore() *Store {
	return &Store{
		companions: make(map[string]storedCompanion),
		events:     make(map[string][]companion.DomainEvent),
	}
}

// SeedDocument stores raw bytes for a user, bypassing encoding.
func (s *Store) SeedDocument(userID string, document []byte, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companions[userID] = storedCompanion{document: append([]byte(nil), document...), version: version}
}

type txMarker struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txMarker{}).(bool)
	return v
}

// lock takes the store lock unless the caller already holds it through RunInTx.
func (s *Store) lock(ctx context.Context, write bool) func() {
	if inTx(ctx) {
		return func() {}
	}
	if write {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
