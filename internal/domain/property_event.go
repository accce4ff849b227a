package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertyEvent is an audit row (REGISTERED, SOLD) created in the same
// transaction as the ledger mutation it describes.
type PropertyEvent struct {
	EventID      uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	PropertyID   int64          `gorm:"column:property_id;not null" json:"property_id"`
	EventType    string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	EventData    datatypes.JSON `gorm:"column:event_data;type:jsonb;not null" json:"event_data"`
	ActorAccount string         `gorm:"column:actor_account;not null" json:"actor_account"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func (PropertyEvent) TableName() string {
	return "PropertyEvents"
}

func (pe *PropertyEvent) BeforeCreate(tx *gorm.DB) error {
	if pe.EventID == uuid.Nil {
		pe.EventID = uuid.New()
	}
	return nil
}
