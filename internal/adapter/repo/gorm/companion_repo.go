package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/adapter/repo/gorm/model"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

	"gorm.io/gorm"
)

type CompanionRepo struct {
	db *gorm.DB
}

func NewCompanionRepo(db *gorm.DB) CompanionRepo {
	return CompanionRepo{db: db}
}

func (r CompanionRepo) Load(ctx context.Context, userID string) (companion.State, error) {
	db := getDBFromCtx(ctx, r.db)
	var m model.Companion
	if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companion.State{}, ports.ErrNotFound
		}
		return companion.State{}, err
	}
	state, err := companion.DecodeDocument(m.Document)
	if err != nil {
		return companion.State{}, &ports.CorruptedRecordError{Version: m.Version, Err: err}
	}

	var rows []model.CompanionInventory
	if err := db.Where("user_id = ?", userID).Order("item_name").Find(&rows).Error; err != nil {
		return companion.State{}, fmt.Errorf("load inventory: %w", err)
	}
	for _, row := range rows {
		if row.Quantity <= 0 {
			continue
		}
		state.Inventory[row.ItemName] = companion.InventoryEntry{
			ItemName: row.ItemName,
			Quantity: int(row.Quantity),
			Category: row.Category,
			Rarity:   companion.Rarity(row.Rarity),
			LastUsed: row.LastUsed,
		}
	}
	state.UserID = userID
	state.Version = m.Version
	return state, nil
}

// SaveWithVersion writes the document and replaces the inventory rows in one
// transaction.
func (r CompanionRepo) SaveWithVersion(ctx context.Context, state companion.State, expectedVersion int64) error {
	docState := state
	docState.Inventory = nil
	doc, err := companion.EncodeDocument(docState)
	if err != nil {
		return err
	}

	return NewTxManager(r.db).RunInTx(ctx, func(ctx context.Context) error {
		db := getDBFromCtx(ctx, r.db)
		if expectedVersion == 0 {
			m := model.Companion{
				UserID:        state.UserID,
				Document:      doc,
				SchemaVersion: companion.SchemaVersion,
				Name:          state.Name,
				Level:         int32(state.Level),
				Gold:          int64(state.Gold),
				LastUpdate:    state.LastUpdate,
				Version:       state.Version,
			}
			if err := db.Create(&m).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ports.ErrConflict
				}
				return err
			}
		} else {
			res := db.Model(&model.Companion{}).
				Where("user_id = ? AND version = ?", state.UserID, expectedVersion).
				Updates(map[string]any{
					"document":       doc,
					"schema_version": companion.SchemaVersion,
					"name":           state.Name,
					"level":          int32(state.Level),
					"gold":           int64(state.Gold),
					"last_update":    state.LastUpdate,
					"version":        state.Version,
					"updated_at":     gorm.Expr("NOW()"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ports.ErrConflict
			}
		}
		return replaceInventory(db, state.UserID, state.Inventory)
	})
}

func replaceInventory(db *gorm.DB, userID string, inv companion.Inventory) error {
	if err := db.Where("user_id = ?", userID).Delete(&model.CompanionInventory{}).Error; err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}
	items := inv.Items()
	if len(items) == 0 {
		return nil
	}
	rows := make([]model.CompanionInventory, 0, len(items))
	for _, e := range items {
		rows = append(rows, model.CompanionInventory{
			UserID:   userID,
			ItemName: e.ItemName,
			Quantity: int32(e.Quantity),
			Category: e.Category,
			Rarity:   string(e.Rarity),
			LastUsed: e.LastUsed,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	return nil
}
