package domain

import (
	"time"
)

// Property is one registered listing in the ledger. PropertyID is dense,
// assigned by the registry starting at 0, never reused. Price, Location and
// MetadataURI are fixed at registration; only Purchased and CurrentOwner
// change afterwards, and each at most once.
type Property struct {
	PropertyID  int64     `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	Price       int64     `gorm:"column:price;not null" json:"price"`
	Location    string    `gorm:"column:location;not null" json:"location"`
	MetadataURI string    `gorm:"column:metadata_uri;not null" json:"metadata_uri"`
	Purchased   bool      `gorm:"column:purchased;not null;default:false" json:"purchased"`
	CurrentOwner string   `gorm:"column:current_owner;not null" json:"current_owner"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Property) TableName() string {
	return "Properties"
}
