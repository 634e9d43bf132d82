package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const TableNameDomainEvent = "domain_events"

type DomainEvent struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"column:user_id;type:text;not null;index:idx_domain_events_user_time_seq,priority:1" json:"user_id"`
	Type       string         `gorm:"column:type;type:text;not null" json:"type"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null;index:idx_domain_events_user_time_seq,priority:2" json:"occurred_at"`
	Payload    datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	Seq        int64          `gorm:"column:seq;->" json:"seq"`
}

func (*DomainEvent) TableName() string {
	return TableNameDomainEvent
}
