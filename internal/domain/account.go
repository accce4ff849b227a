package domain

import (
	"time"

	"gorm.io/gorm"
)

// Account is a wallet-style identity: an opaque address, a bcrypt-hashed
// passphrase used on reconnect, and an integer balance in base units.
type Account struct {
	Address        string         `gorm:"column:address;primaryKey" json:"address"`
	PassphraseHash string         `gorm:"column:passphrase_hash;not null" json:"-"`
	Balance        int64          `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt      time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string {
	return "Accounts"
}
