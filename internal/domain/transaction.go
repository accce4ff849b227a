package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is one settlement record: the transfer from buyer to seller
// written in the same database transaction as the sale it settles.
type Transaction struct {
	TxID        uuid.UUID `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	Type        string    `gorm:"column:type;type:varchar(20);not null" json:"type"`
	PropertyID  *int64    `gorm:"column:property_id" json:"property_id"`
	FromAccount string    `gorm:"column:from_account;not null" json:"from_account"`
	ToAccount   string    `gorm:"column:to_account;not null" json:"to_account"`
	Amount      int64     `gorm:"column:amount;not null" json:"amount"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}
