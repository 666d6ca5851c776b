package store

import (
	"context"
	"errors"
	"time"

	"depo-system/internal/database/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate qr code")
)

// ItemStore is the record-store boundary for shipment items. The
// production implementation is gorm/postgres; tests use the in-memory
// implementation in this package.
type ItemStore interface {
	// FindByBox returns every item of a box, oldest first.
	FindByBox(ctx context.Context, box string) ([]models.ShipmentItem, error)
	// FindByQRCode returns nil, nil when the code is unknown.
	FindByQRCode(ctx context.Context, qrCode string) (*models.ShipmentItem, error)
	Insert(ctx context.Context, item *models.ShipmentItem) error
	Update(ctx context.Context, item *models.ShipmentItem) error
	// UpdateBoxPreAcceptance flags every item of a box in a single
	// batched write so the box transitions as a set.
	UpdateBoxPreAcceptance(ctx context.Context, box string, status models.PreAcceptanceStatus, by string, at time.Time) error
	// InsertBatch is all-or-nothing; items whose QR code already
	// exists are skipped, never overwritten.
	InsertBatch(ctx context.Context, items []models.ShipmentItem) error
	ListByStore(ctx context.Context, storeID string) ([]models.ShipmentItem, error)
	ListAll(ctx context.Context) ([]models.ShipmentItem, error)
}
