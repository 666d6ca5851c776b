package acceptance

import (
	"context"
	"fmt"

	"depo-system/internal/database/models"
)

// Direction is a requested shelf/warehouse move.
type Direction string

const (
	ShelfToWarehouse Direction = "shelf-to-warehouse"
	WarehouseToShelf Direction = "warehouse-to-shelf"
)

func (d Direction) endpoints() (source, target models.Location, err error) {
	switch d {
	case ShelfToWarehouse:
		return models.LocationShelf, models.LocationWarehouse, nil
	case WarehouseToShelf:
		return models.LocationWarehouse, models.LocationShelf, nil
	default:
		return "", "", fmt.Errorf("unknown direction %q", d)
	}
}

type AddressInput struct {
	QRCode    string
	Direction Direction
	StoreID   string
	Username  string
}

type AddressResult struct {
	Outcome Outcome
	Item    *models.ShipmentItem
}

// TransitionAddress moves an accepted item between shelf and
// warehouse. Both acceptance stages must be complete and the item
// must currently sit at the expected source location.
func (r *Resolver) TransitionAddress(ctx context.Context, in AddressInput) (*AddressResult, error) {
	source, target, err := in.Direction.endpoints()
	if err != nil {
		return nil, err
	}

	item, err := r.store.FindByQRCode(ctx, in.QRCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.ToLocationID != in.StoreID {
		return nil, ErrWrongStore
	}
	if item.PreAcceptanceStatus == models.PreUnset {
		return nil, &PreconditionError{MissingStage: "pre-acceptance"}
	}
	if item.GoodsAcceptanceStatus == models.GoodsUnset {
		return nil, &PreconditionError{MissingStage: "goods acceptance"}
	}
	if item.CurrentLocation != source {
		return nil, &StateMismatchError{Current: item.CurrentLocation, Expected: source}
	}

	now := r.now()
	item.CurrentLocation = target
	item.AddressedBy = in.Username
	item.AddressedAt = &now
	if err := r.store.Update(ctx, item); err != nil {
		return nil, err
	}

	return &AddressResult{Outcome: OutcomeTransitioned, Item: item}, nil
}
