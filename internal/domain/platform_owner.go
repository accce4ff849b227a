package domain

import (
	"time"
)

// PlatformOwner is one member of the privileged platform-owner set. The set
// only grows: rows are inserted by AddPlatformOwner and never deleted.
type PlatformOwner struct {
	Account   string    `gorm:"column:account;primaryKey" json:"account"`
	AddedBy   string    `gorm:"column:added_by;not null" json:"added_by"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (PlatformOwner) TableName() string {
	return "PlatformOwners"
}
