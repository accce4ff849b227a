package propertyevents

import (
	"context"

	"homestead-backend/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// ViewEvents returns the audit trail for one property, oldest first.
func (s *Service) ViewEvents(ctx context.Context, propertyID int64) ([]domain.PropertyEvent, error) {
	var events []domain.PropertyEvent
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order(`"created_at" ASC`).
		Find(&events).Error; err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.PropertyEvent{}
	}
	return events, nil
}
