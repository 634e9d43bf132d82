package gormrepo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/platform/storage/sqlmigrate"

	"gorm.io/gorm"
)

// ApplyMigrations runs every not-yet-applied .sql file in dir, each in its own
// transaction.
func ApplyMigrations(ctx context.Context, db *gorm.DB, dir string) error {
	createMetaTableSQL := `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	if err := db.WithContext(ctx).Exec(createMetaTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := sqlmigrate.Load(os.DirFS(dir), ".")
	if err != nil {
		return err
	}
	for _, f := range files {
		var count int64
		if err := db.WithContext(ctx).Table("schema_migrations").Where("version = ?", f.Version).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %s: %w", f.Version, err)
		}
		if count > 0 {
			continue
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(f.Up).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", f.Name, err)
			}
			if err := tx.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)`, f.Version, time.Now()).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", f.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
