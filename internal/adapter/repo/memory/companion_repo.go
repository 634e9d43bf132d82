package memory

import (
	"context"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

type CompanionRepo struct {
	store *Store
}

func NewCompanionRepo(store *Store) CompanionRepo {
	return CompanionRepo{store: store}
}

func (r CompanionRepo) Load(ctx context.Context, userID string) (companion.State, error) {
	defer r.store.lock(ctx, false)()
	rec, ok := r.store.companions[userID]
	if !ok {
		return companion.State{}, ports.ErrNotFound
	}
	state, err := companion.DecodeDocument(rec.document)
	if err != nil {
		return companion.State{}, &ports.CorruptedRecordError{Version: rec.version, Err: err}
	}
	state.UserID = userID
	state.Version = rec.version
	return state, nil
}

func (r CompanionRepo) SaveWithVersion(ctx context.Context, state companion.State, expectedVersion int64) error {
	doc, err := companion.EncodeDocument(state)
	if err != nil {
		return err
	}
	defer r.store.lock(ctx, true)()
	current, ok := r.store.companions[state.UserID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
	} else if current.version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.companions[state.UserID] = storedCompanion{document: doc, version: state.Version}
	return nil
}
