package models

import (
	"strings"
	"time"
)

// QRPrefix is the expected leading token of every registered QR code.
const QRPrefix = "NVG"

// PreAcceptanceStatus is the box-level first scan stage.
type PreAcceptanceStatus string

const (
	PreUnset      PreAcceptanceStatus = ""
	PreSuccess    PreAcceptanceStatus = "success"
	PreWrongStore PreAcceptanceStatus = "success-wrong-store"
)

// GoodsAcceptanceStatus is the per-item second stage. The numeric
// values match the upstream feed's status column.
type GoodsAcceptanceStatus int32

const (
	GoodsUnset             GoodsAcceptanceStatus = 0
	GoodsAccepted          GoodsAcceptanceStatus = 1
	GoodsAcceptedElsewhere GoodsAcceptanceStatus = 2
)

func (s GoodsAcceptanceStatus) Terminal() bool {
	return s == GoodsAccepted || s == GoodsAcceptedElsewhere
}

func (s GoodsAcceptanceStatus) Label() string {
	switch s {
	case GoodsAccepted:
		return "accepted"
	case GoodsAcceptedElsewhere:
		return "accepted-elsewhere"
	default:
		return "unset"
	}
}

// Location is an addressed item's sub-location within the store.
type Location string

const (
	LocationUnset     Location = ""
	LocationShelf     Location = "SHELF"
	LocationWarehouse Location = "WAREHOUSE"
)

// ShipmentItem is one physical QR-coded unit inside a box. Each box
// groups several items of one shipment; ProductQuantity is a box-level
// value duplicated onto every item by the feed.
type ShipmentItem struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	QRCode         string     `gorm:"size:100;uniqueIndex;not null" json:"qr_code"`
	Box            string     `gorm:"size:100;index;not null" json:"box"`
	ShipmentNumber string     `gorm:"size:100" json:"shipment_number"`
	ShipmentDate   *time.Time `json:"shipment_date"`
	FromLocationID string     `gorm:"size:50" json:"from_location_id"`
	// ToLocationID is the destination store and the tenant boundary.
	// Immutable after creation.
	ToLocationID    string `gorm:"size:50;index;not null" json:"to_location_id"`
	ProductQuantity int32  `json:"product_quantity"`

	PreAcceptanceStatus PreAcceptanceStatus `gorm:"size:30;default:''" json:"pre_acceptance_status"`
	PreAcceptanceBy     string              `gorm:"size:100" json:"pre_acceptance_by"`
	PreAcceptanceAt     *time.Time          `json:"pre_acceptance_at"`

	GoodsAcceptanceStatus GoodsAcceptanceStatus `gorm:"default:0" json:"goods_acceptance_status"`
	GoodsAcceptanceBy     string                `gorm:"size:100" json:"goods_acceptance_by"`
	GoodsAcceptanceAt     *time.Time            `json:"goods_acceptance_at"`
	// ReceivedByStoreID records physical custody when the item was
	// accepted by a store other than its destination.
	ReceivedByStoreID string `gorm:"size:50" json:"received_by_store_id,omitempty"`

	CurrentLocation Location   `gorm:"size:20;default:''" json:"current_location"`
	AddressedBy     string     `gorm:"size:100" json:"addressed_by"`
	AddressedAt     *time.Time `json:"addressed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasQRPrefix reports whether a scanned code follows the registered
// prefix convention. Codes without it need an operator override.
func HasQRPrefix(code string) bool {
	return strings.HasPrefix(code, QRPrefix)
}
