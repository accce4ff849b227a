package transactions

import (
	"context"

	"homestead-backend/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// ViewTransactions returns settlement history for an account, newest first.
// An empty account returns the full history (platform-owner view; the
// handler gates that path).
func (s *Service) ViewTransactions(ctx context.Context, account string) ([]domain.Transaction, error) {
	q := s.DB.WithContext(ctx).Order(`"createdAt" DESC`)
	if account != "" {
		q = q.Where("from_account = ? OR to_account = ?", account, account)
	}
	var txs []domain.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}
