package model

import "time"

const TableNameCompanionInventory = "companion_inventory"

type CompanionInventory struct {
	UserID    string     `gorm:"column:user_id;type:text;primaryKey" json:"user_id"`
	ItemName  string     `gorm:"column:item_name;type:text;primaryKey" json:"item_name"`
	Quantity  int32      `gorm:"column:quantity;not null" json:"quantity"`
	Category  string     `gorm:"column:category;type:text;not null" json:"category"`
	Rarity    string     `gorm:"column:rarity;type:text;not null;default:common" json:"rarity"`
	LastUsed  *time.Time `gorm:"column:last_used" json:"last_used"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (*CompanionInventory) TableName() string {
	return TableNameCompanionInventory
}
