package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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
	if err := ctx.Err(); err != nil {
		return companion.State{}, err
	}
	q := r.store.conn(ctx)

	var (
		document []byte
		version  int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT document, version FROM companions WHERE user_id = ?`, userID,
	).Scan(&document, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return companion.State{}, ports.ErrNotFound
	}
	if err != nil {
		return companion.State{}, fmt.Errorf("load companion: %w", err)
	}
	state, err := companion.DecodeDocument(document)
	if err != nil {
		return companion.State{}, &ports.CorruptedRecordError{Version: version, Err: err}
	}

	rows, err := q.QueryContext(ctx,
		`SELECT item_name, quantity, category, rarity, last_used
		 FROM companion_inventory WHERE user_id = ? ORDER BY item_name`, userID)
	if err != nil {
		return companion.State{}, fmt.Errorf("load inventory: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e        companion.InventoryEntry
			rarity   string
			lastUsed sql.NullInt64
		)
		if err := rows.Scan(&e.ItemName, &e.Quantity, &e.Category, &rarity, &lastUsed); err != nil {
			return companion.State{}, fmt.Errorf("scan inventory: %w", err)
		}
		if e.Quantity <= 0 {
			continue
		}
		e.Rarity = companion.Rarity(rarity)
		if lastUsed.Valid {
			t := fromMillis(lastUsed.Int64)
			e.LastUsed = &t
		}
		state.Inventory[e.ItemName] = e
	}
	if err := rows.Err(); err != nil {
		return companion.State{}, fmt.Errorf("iterate inventory: %w", err)
	}

	state.UserID = userID
	state.Version = version
	return state, nil
}

func (r CompanionRepo) SaveWithVersion(ctx context.Context, state companion.State, expectedVersion int64) error {
	docState := state
	docState.Inventory = nil
	doc, err := companion.EncodeDocument(docState)
	if err != nil {
		return err
	}
	now := toMillis(time.Now())

	return NewTxManager(r.store).RunInTx(ctx, func(ctx context.Context) error {
		q := r.store.conn(ctx)
		if expectedVersion == 0 {
			_, err := q.ExecContext(ctx,
				`INSERT INTO companions (
				   user_id, document, schema_version, name, level, gold,
				   last_update, version, created_at, updated_at
				 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				state.UserID, string(doc), companion.SchemaVersion, state.Name, state.Level, state.Gold,
				toMillis(state.LastUpdate), state.Version, now, now,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return ports.ErrConflict
				}
				return fmt.Errorf("insert companion: %w", err)
			}
		} else {
			res, err := q.ExecContext(ctx,
				`UPDATE companions SET
				   document = ?, schema_version = ?, name = ?, level = ?, gold = ?,
				   last_update = ?, version = ?, updated_at = ?
				 WHERE user_id = ? AND version = ?`,
				string(doc), companion.SchemaVersion, state.Name, state.Level, state.Gold,
				toMillis(state.LastUpdate), state.Version, now,
				state.UserID, expectedVersion,
			)
			if err != nil {
				return fmt.Errorf("update companion: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("update companion: %w", err)
			}
			if n == 0 {
				return ports.ErrConflict
			}
		}
		return replaceInventory(ctx, q, state.UserID, state.Inventory)
	})
}

func replaceInventory(ctx context.Context, q querier, userID string, inv companion.Inventory) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM companion_inventory WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}
	for _, e := range inv.Items() {
		var lastUsed sql.NullInt64
		if e.LastUsed != nil {
			lastUsed = sql.NullInt64{Int64: toMillis(*e.LastUsed), Valid: true}
		}
		_, err := q.ExecContext(ctx,
			`INSERT INTO companion_inventory (user_id, item_name, quantity, category, rarity, last_used)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			userID, e.ItemName, e.Quantity, e.Category, string(e.Rarity), lastUsed,
		)
		if err != nil {
			return fmt.Errorf("write inventory %s: %w", e.ItemName, err)
		}
	}
	return nil
}
