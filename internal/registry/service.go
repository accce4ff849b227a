package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"homestead-backend/internal/domain"
	"homestead-backend/internal/settlement"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ledger is the authoritative record of properties and their ownership.
// All mutating operations are serialized by mu; a purchase additionally
// guards against re-entry from its own settlement call (see guard.go).
// Reads never take the lock and return the latest committed state.
type Ledger struct {
	DB      *gorm.DB
	Settler settlement.Settler

	mu sync.Mutex
}

// Bootstrap seeds the platform-owner set with the deployer account.
// Idempotent; runs at every startup.
func (l *Ledger) Bootstrap(ctx context.Context, deployer string) error {
	if deployer == "" {
		return errors.New("deployer account is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.DB.WithContext(ctx).
		Where("account = ?", deployer).
		FirstOrCreate(&domain.PlatformOwner{Account: deployer, AddedBy: deployer}).Error
}

// IsPlatformOwner reports whether account is in the platform-owner set.
func (l *Ledger) IsPlatformOwner(ctx context.Context, account string) (bool, error) {
	var count int64
	err := l.DB.WithContext(ctx).Model(&domain.PlatformOwner{}).
		Where("account = ?", account).Count(&count).Error
	return count > 0, err
}

// AddPlatformOwner inserts account into the platform-owner set. Only an
// existing member may call it; inserting an existing member is a no-op.
func (l *Ledger) AddPlatformOwner(ctx context.Context, caller, account string) error {
	if inSettlement(ctx) {
		return ErrReentrantCall
	}
	if account == "" {
		return ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := memberOf(tx, caller)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotPlatformOwner
		}
		return tx.Where("account = ?", account).
			FirstOrCreate(&domain.PlatformOwner{Account: account, AddedBy: caller}).Error
	})
}

// AddPropertyInput carries the immutable descriptive fields of a new listing.
type AddPropertyInput struct {
	Price       int64
	Location    string
	MetadataURI string
}

// AddProperty registers a new listing owned by caller and returns its id.
// Only platform owners may register. Ids are dense from 0: the next id is
// the current row count, assigned under the write lock.
func (l *Ledger) AddProperty(ctx context.Context, caller string, in AddPropertyInput) (int64, error) {
	if inSettlement(ctx) {
		return 0, ErrReentrantCall
	}
	if in.Price <= 0 || in.Location == "" || in.MetadataURI == "" {
		return 0, ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var id int64
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := memberOf(tx, caller)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotPlatformOwner
		}

		var count int64
		if err := tx.Model(&domain.Property{}).Count(&count).Error; err != nil {
			return err
		}
		prop := domain.Property{
			PropertyID:   count,
			Price:        in.Price,
			Location:     in.Location,
			MetadataURI:  in.MetadataURI,
			Purchased:    false,
			CurrentOwner: caller,
		}
		if err := tx.Create(&prop).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"price":        prop.Price,
			"location":     prop.Location,
			"metadata_uri": prop.MetadataURI,
		})
		if err := tx.Create(&domain.PropertyEvent{
			PropertyID:   prop.PropertyID,
			EventType:    "REGISTERED",
			ActorAccount: caller,
			EventData:    datatypes.JSON(eventData),
		}).Error; err != nil {
			return err
		}

		id = prop.PropertyID
		return nil
	})
	return id, err
}

// BuyProperty sells the listing at id to buyer for exactly its price.
// Preconditions are checked in order: existence, unsold, exact payment.
// The sold flag and owner flip BEFORE the settlement call; the settlement
// context carries the reentrancy marker, and the whole sale (state flip,
// settlement record, SOLD event, funds transfer) commits or rolls back as
// one transaction.
func (l *Ledger) BuyProperty(ctx context.Context, buyer string, id int64, payment int64) error {
	if inSettlement(ctx) {
		return ErrReentrantCall
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop domain.Property
		if err := tx.Where("property_id = ?", id).First(&prop).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if prop.Purchased {
			return ErrAlreadySold
		}
		if payment != prop.Price {
			return ErrIncorrectPrice
		}

		seller := prop.CurrentOwner
		// Save would INSERT for id 0 (zero-value primary key); update explicitly.
		if err := tx.Model(&domain.Property{}).
			Where("property_id = ?", prop.PropertyID).
			Updates(map[string]interface{}{
				"purchased":     true,
				"current_owner": buyer,
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(&domain.Transaction{
			Type:        "sale",
			PropertyID:  &prop.PropertyID,
			FromAccount: buyer,
			ToAccount:   seller,
			Amount:      payment,
		}).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"price":  prop.Price,
			"seller": seller,
			"buyer":  buyer,
		})
		if err := tx.Create(&domain.PropertyEvent{
			PropertyID:   prop.PropertyID,
			EventType:    "SOLD",
			ActorAccount: buyer,
			EventData:    datatypes.JSON(eventData),
		}).Error; err != nil {
			return err
		}

		// Last step: the only call that leaves this system's control.
		if err := l.Settler.Transfer(markSettlement(ctx), tx, buyer, seller, payment); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		return nil
	})
}

// GetProperty returns the listing at id.
func (l *Ledger) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	var prop domain.Property
	if err := l.DB.WithContext(ctx).Where("property_id = ?", id).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &prop, nil
}

// GetProperties returns every listing in creation order (no pagination).
func (l *Ledger) GetProperties(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	err := l.DB.WithContext(ctx).Order("property_id asc").Find(&props).Error
	return props, err
}

// TotalProperties returns the number of registered listings.
func (l *Ledger) TotalProperties(ctx context.Context) (int64, error) {
	var count int64
	err := l.DB.WithContext(ctx).Model(&domain.Property{}).Count(&count).Error
	return count, err
}

// OwnerOf returns the current owner of the listing at id.
func (l *Ledger) OwnerOf(ctx context.Context, id int64) (string, error) {
	prop, err := l.GetProperty(ctx, id)
	if err != nil {
		return "", err
	}
	return prop.CurrentOwner, nil
}

func memberOf(tx *gorm.DB, account string) (bool, error) {
	var count int64
	err := tx.Model(&domain.PlatformOwner{}).Where("account = ?", account).Count(&count).Error
	return count > 0, err
}
