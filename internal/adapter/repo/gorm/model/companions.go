package model

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameCompanion = "companions"

// Companion is the versioned document row. Inventory lives in companion_inventory.
type Companion struct {
	UserID        string         `gorm:"column:user_id;type:text;primaryKey" json:"user_id"`
	Document      datatypes.JSON `gorm:"column:document;type:jsonb;not null" json:"document"`
	SchemaVersion int32          `gorm:"column:schema_version;not null" json:"schema_version"`
	Name          string         `gorm:"column:name;type:text;not null" json:"name"`
	Level         int32          `gorm:"column:level;not null" json:"level"`
	Gold          int64          `gorm:"column:gold;not null" json:"gold"`
	LastUpdate    time.Time      `gorm:"column:last_update;not null" json:"last_update"`
	Version       int64          `gorm:"column:version;not null" json:"version"`
	CreatedAt     time.Time      `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (*Companion) TableName() string {
	return TableNameCompanion
}
