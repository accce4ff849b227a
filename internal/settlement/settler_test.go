package settlement

import (
	"context"
	"testing"

	"homestead-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSettlerTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}))
	return db
}

func createAccount(t *testing.T, db *gorm.DB, address string, balance int64) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Account{
		Address:        address,
		PassphraseHash: "x",
		Balance:        balance,
	}).Error)
}

func TestTransfer_MovesExactAmount(t *testing.T) {
	db := setupSettlerTest(t)
	createAccount(t, db, "0xfrom", 300)
	createAccount(t, db, "0xto", 50)

	err := db.Transaction(func(tx *gorm.DB) error {
		return AccountSettler{}.Transfer(context.Background(), tx, "0xfrom", "0xto", 100)
	})
	require.NoError(t, err)

	var from, to domain.Account
	require.NoError(t, db.Where("address = ?", "0xfrom").First(&from).Error)
	require.NoError(t, db.Where("address = ?", "0xto").First(&to).Error)
	assert.Equal(t, int64(200), from.Balance)
	assert.Equal(t, int64(150), to.Balance)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	db := setupSettlerTest(t)
	createAccount(t, db, "0xfrom", 10)
	createAccount(t, db, "0xto", 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return AccountSettler{}.Transfer(context.Background(), tx, "0xfrom", "0xto", 100)
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestTransfer_UnknownRecipient(t *testing.T) {
	db := setupSettlerTest(t)
	createAccount(t, db, "0xfrom", 300)

	err := db.Transaction(func(tx *gorm.DB) error {
		return AccountSettler{}.Transfer(context.Background(), tx, "0xfrom", "0xghost", 100)
	})
	assert.ErrorIs(t, err, ErrRecipientUnknown)

	var from domain.Account
	require.NoError(t, db.Where("address = ?", "0xfrom").First(&from).Error)
	assert.Equal(t, int64(300), from.Balance, "failed transfer must not debit the payer")
}

func TestTransfer_UnknownPayer(t *testing.T) {
	db := setupSettlerTest(t)
	createAccount(t, db, "0xto", 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return AccountSettler{}.Transfer(context.Background(), tx, "0xghost", "0xto", 100)
	})
	assert.ErrorIs(t, err, ErrPayerUnknown)
}

func TestTransfer_SelfTransferIsNeutral(t *testing.T) {
	db := setupSettlerTest(t)
	createAccount(t, db, "0xself", 300)

	err := db.Transaction(func(tx *gorm.DB) error {
		return AccountSettler{}.Transfer(context.Background(), tx, "0xself", "0xself", 100)
	})
	require.NoError(t, err)

	var acct domain.Account
	require.NoError(t, db.Where("address = ?", "0xself").First(&acct).Error)
	assert.Equal(t, int64(300), acct.Balance)
}
