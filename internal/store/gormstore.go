package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"depo-system/internal/database/models"
)

// GormStore is the postgres-backed ItemStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ ItemStore = (*GormStore)(nil)

func (s *GormStore) FindByBox(ctx context.Context, box string) ([]models.ShipmentItem, error) {
	var items []models.ShipmentItem
	if err := s.db.WithContext(ctx).
		Where("box = ?", box).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("finding items for box %s: %w", box, err)
	}
	return items, nil
}

func (s *GormStore) FindByQRCode(ctx context.Context, qrCode string) (*models.ShipmentItem, error) {
	var item models.ShipmentItem
	err := s.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding item by qr code: %w", err)
	}
	return &item, nil
}

func (s *GormStore) Insert(ctx context.Context, item *models.ShipmentItem) error {
	err := s.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, item *models.ShipmentItem) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("updating item %d: %w", item.ID, err)
	}
	return nil
}

// UpdateBoxPreAcceptance runs as one UPDATE statement: either every
// item of the box is flagged or none is.
func (s *GormStore) UpdateBoxPreAcceptance(ctx context.Context, box string, status models.PreAcceptanceStatus, by string, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.ShipmentItem{}).
		Where("box = ?", box).
		Updates(map[string]interface{}{
			"pre_acceptance_status": status,
			"pre_acceptance_by":     by,
			"pre_acceptance_at":     at,
		})
	if result.Error != nil {
		return fmt.Errorf("updating pre-acceptance for box %s: %w", box, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) InsertBatch(ctx context.Context, items []models.ShipmentItem) error {
	if len(items) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "qr_code"}},
			DoNothing: true,
		}).CreateInBatches(items, 200).Error
	})
	if err != nil {
		return fmt.Errorf("batch inserting %d items: %w", len(items), err)
	}
	return nil
}

func (s *GormStore) ListByStore(ctx context.Context, storeID string) ([]models.ShipmentItem, error) {
	var items []models.ShipmentItem
	if err := s.db.WithContext(ctx).
		Where("to_location_id = ?", storeID).
		Order("box ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing items for store %s: %w", storeID, err)
	}
	return items, nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]models.ShipmentItem, error) {
	var items []models.ShipmentItem
	if err := s.db.WithContext(ctx).Order("box ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}
