package accounts

import (
	"context"
	"errors"

	"homestead-backend/internal/domain"
	"homestead-backend/internal/registry"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service manages wallet-style accounts: connect (create or verify),
// balance reads, and the platform-owner-gated faucet.
type Service struct {
	DB     *gorm.DB
	Ledger *registry.Ledger
}

// Connect returns the account for address, creating it with a hashed
// passphrase on first use or verifying the passphrase on reconnect.
func (s *Service) Connect(ctx context.Context, address, passphrase string) (*domain.Account, error) {
	if address == "" {
		return nil, ErrAddressRequired
	}
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}

	var acct domain.Account
	err := s.DB.WithContext(ctx).Where("address = ?", address).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		acct = domain.Account{
			Address:        address,
			PassphraseHash: string(hash),
			Balance:        0,
		}
		if err := s.DB.WithContext(ctx).Create(&acct).Error; err != nil {
			return nil, err
		}
		return &acct, nil
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PassphraseHash), []byte(passphrase)) != nil {
		return nil, ErrWrongPassphrase
	}
	return &acct, nil
}

// Balance returns the balance of address.
func (s *Service) Balance(ctx context.Context, address string) (int64, error) {
	var acct domain.Account
	if err := s.DB.WithContext(ctx).Where("address = ?", address).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return acct.Balance, nil
}

// Fund credits amount to address. Platform owners only; records a "fund"
// transaction row in the same database transaction.
func (s *Service) Fund(ctx context.Context, caller, address string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	ok, err := s.Ledger.IsPlatformOwner(ctx, caller)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, registry.ErrNotPlatformOwner
	}

	var balance int64
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acct domain.Account
		if err := tx.Where("address = ?", address).First(&acct).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		acct.Balance += amount
		if err := tx.Save(&acct).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.Transaction{
			Type:        "fund",
			FromAccount: caller,
			ToAccount:   address,
			Amount:      amount,
		}).Error; err != nil {
			return err
		}
		balance = acct.Balance
		return nil
	})
	return balance, err
}
