package settlement

import (
	"context"
	"errors"

	"homestead-backend/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrPayerUnknown      = errors.New("payer account not found")
	ErrRecipientUnknown  = errors.New("recipient cannot accept funds")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Settler moves the purchase price from buyer to seller. It runs inside the
// purchase transaction (tx), so a failed transfer rolls the whole sale back.
// The recipient is an account the registry does not control; implementations
// may execute arbitrary code before returning.
type Settler interface {
	Transfer(ctx context.Context, tx *gorm.DB, from, to string, amount int64) error
}

// AccountSettler settles against the ledger's own account balances.
type AccountSettler struct{}

func (AccountSettler) Transfer(ctx context.Context, tx *gorm.DB, from, to string, amount int64) error {
	var payer domain.Account
	if err := tx.Where("address = ?", from).First(&payer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPayerUnknown
		}
		return err
	}
	if payer.Balance < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}

	var payee domain.Account
	if err := tx.Where("address = ?", to).First(&payee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipientUnknown
		}
		return err
	}

	payer.Balance -= amount
	if err := tx.Save(&payer).Error; err != nil {
		return err
	}
	payee.Balance += amount
	return tx.Save(&payee).Error
}
