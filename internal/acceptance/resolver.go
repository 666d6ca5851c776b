package acceptance

import (
	"context"
	"time"

	"depo-system/internal/database/models"
	"depo-system/internal/store"
)

// Resolver decides, for a scanned code and the caller's store
// identity, which workflow outcome applies and writes the resulting
// field mutations through the item store.
type Resolver struct {
	store store.ItemStore
	now   func() time.Time
}

func NewResolver(itemStore store.ItemStore) *Resolver {
	return &Resolver{store: itemStore, now: time.Now}
}

type PreAcceptanceInput struct {
	Box      string
	StoreID  string
	Username string
	// Override allows re-flagging a box whose pre-acceptance already
	// succeeded. Without it, success is sticky.
	Override bool
}

type PreAcceptanceResult struct {
	Outcome   Outcome
	Box       string
	ItemCount int
	// Misrouted is set when at least one item of the box is destined
	// for another store, regardless of whether flagging was applied.
	Misrouted bool
}

// ResolvePreAcceptance runs the box-level first scan stage. All items
// of the box transition together or not at all.
func (r *Resolver) ResolvePreAcceptance(ctx context.Context, in PreAcceptanceInput) (*PreAcceptanceResult, error) {
	items, err := r.store.FindByBox(ctx, in.Box)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrBoxNotFound
	}

	misrouted := false
	alreadyAccepted := false
	for _, item := range items {
		if item.ToLocationID != in.StoreID {
			misrouted = true
		}
		if item.PreAcceptanceStatus == models.PreSuccess {
			alreadyAccepted = true
		}
	}

	result := &PreAcceptanceResult{Box: in.Box, ItemCount: len(items), Misrouted: misrouted}

	if misrouted {
		// A misrouted box is quarantined visibly; the goods already
		// arrived at the wrong site. A prior success blocks the
		// re-flag unless the operator overrides.
		if alreadyAccepted && !in.Override {
			result.Outcome = OutcomeAlreadyAccepted
			return result, nil
		}
		if err := r.store.UpdateBoxPreAcceptance(ctx, in.Box, models.PreWrongStore, in.Username, r.now()); err != nil {
			return nil, err
		}
		result.Outcome = OutcomeWrongStoreFlag
		return result, nil
	}

	if alreadyAccepted {
		result.Outcome = OutcomeAlreadyAccepted
		return result, nil
	}

	if err := r.store.UpdateBoxPreAcceptance(ctx, in.Box, models.PreSuccess, in.Username, r.now()); err != nil {
		return nil, err
	}
	result.Outcome = OutcomeAccepted
	return result, nil
}

type GoodsAcceptanceInput struct {
	QRCode   string
	Box      string
	StoreID  string
	Username string
	// AllowPrefixMismatch is the operator override for codes that do
	// not follow the registered prefix convention.
	AllowPrefixMismatch bool
}

type GoodsAcceptanceResult struct {
	Outcome Outcome
	Item    *models.ShipmentItem
	// OwningStoreID and OwningBox identify the true destination when a
	// misrouted item is accepted, so the operator can notify
	// operations.
	OwningStoreID string
	OwningBox     string
	CurrentStatus models.GoodsAcceptanceStatus
}

// ResolveGoodsAcceptance runs the per-item second stage. Goods status
// transitions are terminal: a repeat scan never rewrites them.
func (r *Resolver) ResolveGoodsAcceptance(ctx context.Context, in GoodsAcceptanceInput) (*GoodsAcceptanceResult, error) {
	if !models.HasQRPrefix(in.QRCode) && !in.AllowPrefixMismatch {
		return &GoodsAcceptanceResult{Outcome: OutcomePrefixRejected}, nil
	}

	item, err := r.store.FindByQRCode(ctx, in.QRCode)
	if err != nil {
		return nil, err
	}

	if item == nil {
		// Physically present item with no upstream shipment record;
		// insert it so it stays trackable.
		now := r.now()
		inserted := &models.ShipmentItem{
			QRCode:                in.QRCode,
			Box:                   in.Box,
			ToLocationID:          in.StoreID,
			GoodsAcceptanceStatus: models.GoodsAccepted,
			GoodsAcceptanceBy:     in.Username,
			GoodsAcceptanceAt:     &now,
			CurrentLocation:       models.LocationShelf,
		}
		if err := r.store.Insert(ctx, inserted); err != nil {
			if err == store.ErrDuplicate {
				// Lost a race with a concurrent scan of the same code;
				// treat it as the duplicate it is.
				return r.duplicateResult(ctx, in.QRCode)
			}
			return nil, err
		}
		return &GoodsAcceptanceResult{
			Outcome:       OutcomeUnregisteredInsert,
			Item:          inserted,
			CurrentStatus: inserted.GoodsAcceptanceStatus,
		}, nil
	}

	if item.GoodsAcceptanceStatus.Terminal() {
		return &GoodsAcceptanceResult{
			Outcome:       OutcomeDuplicateScan,
			Item:          item,
			OwningStoreID: item.ToLocationID,
			OwningBox:     item.Box,
			CurrentStatus: item.GoodsAcceptanceStatus,
		}, nil
	}

	now := r.now()
	item.GoodsAcceptanceBy = in.Username
	item.GoodsAcceptanceAt = &now
	item.CurrentLocation = models.LocationShelf

	if item.ToLocationID == in.StoreID {
		item.GoodsAcceptanceStatus = models.GoodsAccepted
		if err := r.store.Update(ctx, item); err != nil {
			return nil, err
		}
		return &GoodsAcceptanceResult{
			Outcome:       OutcomeGoodsAccepted,
			Item:          item,
			CurrentStatus: item.GoodsAcceptanceStatus,
		}, nil
	}

	// Inventory reflects physical custody, not original routing. The
	// destination itself stays untouched.
	item.GoodsAcceptanceStatus = models.GoodsAcceptedElsewhere
	item.ReceivedByStoreID = in.StoreID
	if err := r.store.Update(ctx, item); err != nil {
		return nil, err
	}
	return &GoodsAcceptanceResult{
		Outcome:       OutcomeMisroutedAccepted,
		Item:          item,
		OwningStoreID: item.ToLocationID,
		OwningBox:     item.Box,
		CurrentStatus: item.GoodsAcceptanceStatus,
	}, nil
}

func (r *Resolver) duplicateResult(ctx context.Context, qrCode string) (*GoodsAcceptanceResult, error) {
	item, err := r.store.FindByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return &GoodsAcceptanceResult{
		Outcome:       OutcomeDuplicateScan,
		Item:          item,
		OwningStoreID: item.ToLocationID,
		OwningBox:     item.Box,
		CurrentStatus: item.GoodsAcceptanceStatus,
	}, nil
}
