package acceptance

import (
	"context"
	"testing"
	"time"

	"depo-system/internal/database/models"
	"depo-system/internal/store"
)

func seedBox(t *testing.T, s *store.MemoryStore, box, storeID string, qty int32, codes ...string) {
	t.Helper()
	ctx := context.Background()
	for _, code := range codes {
		item := &models.ShipmentItem{
			QRCode:          code,
			Box:             box,
			ShipmentNumber:  "SHP-1",
			ToLocationID:    storeID,
			ProductQuantity: qty,
		}
		if err := s.Insert(ctx, item); err != nil {
			t.Fatalf("seeding item %s: %v", code, err)
		}
	}
}

func TestPreAcceptanceHappyThenIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()
	seedBox(t, s, "B100", "S1", 3, "NVG001", "NVG002", "NVG003")

	res, err := r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B100", StoreID: "S1", Username: "ayse"})
	if err != nil {
		t.Fatalf("ResolvePreAcceptance: %v", err)
	}
	if res.Outcome != OutcomeAccepted {
		t.Fatalf("expected %q, got %q", OutcomeAccepted, res.Outcome)
	}
	if res.ItemCount != 3 {
		t.Errorf("expected 3 items, got %d", res.ItemCount)
	}

	items, _ := s.FindByBox(ctx, "B100")
	for _, item := range items {
		if item.PreAcceptanceStatus != models.PreSuccess {
			t.Errorf("item %s: expected success, got %q", item.QRCode, item.PreAcceptanceStatus)
		}
		if item.PreAcceptanceBy != "ayse" {
			t.Errorf("item %s: expected actor ayse, got %q", item.QRCode, item.PreAcceptanceBy)
		}
	}

	before, _ := s.FindByBox(ctx, "B100")
	res, err = r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B100", StoreID: "S1", Username: "mehmet"})
	if err != nil {
		t.Fatalf("second ResolvePreAcceptance: %v", err)
	}
	if res.Outcome != OutcomeAlreadyAccepted {
		t.Fatalf("expected %q, got %q", OutcomeAlreadyAccepted, res.Outcome)
	}
	after, _ := s.FindByBox(ctx, "B100")
	for i := range before {
		if before[i].PreAcceptanceBy != after[i].PreAcceptanceBy ||
			before[i].PreAcceptanceStatus != after[i].PreAcceptanceStatus {
			t.Errorf("item %s mutated by idempotent re-scan", before[i].QRCode)
		}
	}
}

func TestPreAcceptanceUnknownBox(t *testing.T) {
	r := NewResolver(store.NewMemoryStore())

	_, err := r.ResolvePreAcceptance(context.Background(), PreAcceptanceInput{Box: "NOPE", StoreID: "S1", Username: "ayse"})
	if err != ErrBoxNotFound {
		t.Fatalf("expected ErrBoxNotFound, got %v", err)
	}
}

func TestPreAcceptanceWrongStoreFlagsWholeBox(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()
	// One item destined for S1, one for S2: the whole box gets
	// flagged, including the item that matches the caller.
	seedBox(t, s, "B200", "S1", 2, "NVG010")
	seedBox(t, s, "B200", "S2", 2, "NVG011")

	res, err := r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B200", StoreID: "S1", Username: "ayse"})
	if err != nil {
		t.Fatalf("ResolvePreAcceptance: %v", err)
	}
	if res.Outcome != OutcomeWrongStoreFlag {
		t.Fatalf("expected %q, got %q", OutcomeWrongStoreFlag, res.Outcome)
	}
	if !res.Misrouted {
		t.Error("expected result to report misrouting")
	}

	items, _ := s.FindByBox(ctx, "B200")
	for _, item := range items {
		if item.PreAcceptanceStatus != models.PreWrongStore {
			t.Errorf("item %s: expected success-wrong-store, got %q", item.QRCode, item.PreAcceptanceStatus)
		}
	}
}

func TestPreAcceptanceSuccessIsStickyAgainstWrongStore(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()
	seedBox(t, s, "B300", "S1", 5, "NVG020", "NVG021", "NVG022")

	if _, err := r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B300", StoreID: "S1", Username: "ayse"}); err != nil {
		t.Fatalf("first scan: %v", err)
	}

	// Store S2 scans the box S1 already cleared: without the override
	// the prior success stays.
	res, err := r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B300", StoreID: "S2", Username: "kaan"})
	if err != nil {
		t.Fatalf("wrong-store scan: %v", err)
	}
	if res.Outcome != OutcomeAlreadyAccepted {
		t.Fatalf("expected %q, got %q", OutcomeAlreadyAccepted, res.Outcome)
	}
	items, _ := s.FindByBox(ctx, "B300")
	for _, item := range items {
		if item.PreAcceptanceStatus != models.PreSuccess {
			t.Errorf("item %s: success overwritten without override", item.QRCode)
		}
	}

	// With the override the whole box is re-flagged.
	res, err = r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B300", StoreID: "S2", Username: "kaan", Override: true})
	if err != nil {
		t.Fatalf("override scan: %v", err)
	}
	if res.Outcome != OutcomeWrongStoreFlag {
		t.Fatalf("expected %q, got %q", OutcomeWrongStoreFlag, res.Outcome)
	}
	items, _ = s.FindByBox(ctx, "B300")
	for _, item := range items {
		if item.PreAcceptanceStatus != models.PreWrongStore {
			t.Errorf("item %s: expected success-wrong-store after override, got %q", item.QRCode, item.PreAcceptanceStatus)
		}
	}
}

func TestGoodsAcceptanceHappyPath(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()
	seedBox(t, s, "B400", "S1", 4, "NVG030")

	res, err := r.ResolveGoodsAcceptance(ctx, GoodsAcceptanceInput{QRCode: "NVG030", Box: "B400", StoreID: "S1", Username: "ayse"})
	if err != nil {
		t.Fatalf("ResolveGoodsAcceptance: %v", err)
	}
	if res.Outcome != OutcomeGoodsAccepted {
		t.Fatalf("expected %q, got %q", OutcomeGoodsAccepted, res.Outcome)
	}

	item, _ := s.FindByQRCode(ctx, "NVG030")
	if item.GoodsAcceptanceStatus != models.GoodsAccepted {
		t.Errorf("expected status accepted, got %d", item.GoodsAcceptanceStatus)
	}
	if item.CurrentLocation != models.LocationShelf {
		t.Errorf("expected item placed on shelf, got %q", item.CurrentLocation)
	}
	if item.GoodsAcceptanceAt == nil {
		t.Error("expected acceptance timestamp")
	}
}

func TestGoodsAcceptanceRepeatIsDuplicate(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()
	seedBox(t, s, "B400", "S1", 4, "NVG031")

	in := GoodsAcceptanceInput{QRCode: "NVG031", Box: "B400", StoreID: "S1", Username: "ayse"}
	if _, err := r.ResolveGoodsAcceptance(ctx, in); err != nil {
		t.Fatalf("first scan: %v", err)
	}

	first, _ := s.FindByQRCode(ctx, "NVG031")
	res, err := r.ResolveGoodsAcceptance(ctx, in)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if res.Outcome != OutcomeDuplicateScan {
		t.Fatalf("expected %q, got %q", OutcomeDuplicateScan, res.Outcome)
	}
	if res.CurrentStatus != models.GoodsAccepted {
		t.Errorf("duplicate result should carry the current status, got %d", res.CurrentStatus)
	}
	second, _ := s.FindByQRCode(ctx, "NVG031")
	if !second.GoodsAcceptanceAt.Equal(*first.GoodsAcceptanceAt) {
		t.Error("duplicate scan rewrote the acceptance timestamp")
	}
}

func TestGoodsAcceptanceMisrouted(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()
	seedBox(t, s, "B500", "S1", 2, "NVG040")

	res, err := r.ResolveGoodsAcceptance(ctx, GoodsAcceptanceInput{QRCode: "NVG040", Box: "B500", StoreID: "S2", Username: "kaan"})
	if err != nil {
		t.Fatalf("ResolveGoodsAcceptance: %v", err)
	}
	if res.Outcome != OutcomeMisroutedAccepted {
		t.Fatalf("expected %q, got %q", OutcomeMisroutedAccepted, res.Outcome)
	}
	if res.OwningStoreID != "S1" || res.OwningBox != "B500" {
		t.Errorf("expected owning store S1 box B500, got %s/%s", res.OwningStoreID, res.OwningBox)
	}

	item, _ := s.FindByQRCode(ctx, "NVG040")
	if item.GoodsAcceptanceStatus != models.GoodsAcceptedElsewhere {
		t.Errorf("expected accepted-elsewhere, got %d", item.GoodsAcceptanceStatus)
	}
	if item.ToLocationID != "S1" {
		t.Errorf("destination mutated: got %q", item.ToLocationID)
	}
	if item.ReceivedByStoreID != "S2" {
		t.Errorf("expected custody annotation S2, got %q", item.ReceivedByStoreID)
	}
}

func TestGoodsAcceptanceUnknownCodeInsertsOnce(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()

	in := GoodsAcceptanceInput{QRCode: "NVG999", Box: "B600", StoreID: "S1", Username: "ayse"}
	res, err := r.ResolveGoodsAcceptance(ctx, in)
	if err != nil {
		t.Fatalf("ResolveGoodsAcceptance: %v", err)
	}
	if res.Outcome != OutcomeUnregisteredInsert {
		t.Fatalf("expected %q, got %q", OutcomeUnregisteredInsert, res.Outcome)
	}

	item, _ := s.FindByQRCode(ctx, "NVG999")
	if item == nil {
		t.Fatal("expected inserted item")
	}
	if item.GoodsAcceptanceStatus != models.GoodsAccepted {
		t.Errorf("expected accepted, got %d", item.GoodsAcceptanceStatus)
	}
	if item.ToLocationID != "S1" || item.Box != "B600" {
		t.Errorf("unexpected placement: %s/%s", item.ToLocationID, item.Box)
	}

	// Scanning the same code again must not insert a second record.
	res, err = r.ResolveGoodsAcceptance(ctx, in)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if res.Outcome != OutcomeDuplicateScan {
		t.Fatalf("expected %q, got %q", OutcomeDuplicateScan, res.Outcome)
	}
	items, _ := s.FindByBox(ctx, "B600")
	if len(items) != 1 {
		t.Errorf("expected exactly one item, got %d", len(items))
	}
}

func TestGoodsAcceptancePrefixValidation(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	ctx := context.Background()

	res, err := r.ResolveGoodsAcceptance(ctx, GoodsAcceptanceInput{QRCode: "XYZ123", Box: "B700", StoreID: "S1", Username: "ayse"})
	if err != nil {
		t.Fatalf("ResolveGoodsAcceptance: %v", err)
	}
	if res.Outcome != OutcomePrefixRejected {
		t.Fatalf("expected %q, got %q", OutcomePrefixRejected, res.Outcome)
	}
	if item, _ := s.FindByQRCode(ctx, "XYZ123"); item != nil {
		t.Error("prefix rejection must not mutate the store")
	}

	// The operator override lets the odd code through.
	res, err = r.ResolveGoodsAcceptance(ctx, GoodsAcceptanceInput{QRCode: "XYZ123", Box: "B700", StoreID: "S1", Username: "ayse", AllowPrefixMismatch: true})
	if err != nil {
		t.Fatalf("override scan: %v", err)
	}
	if res.Outcome != OutcomeUnregisteredInsert {
		t.Fatalf("expected %q, got %q", OutcomeUnregisteredInsert, res.Outcome)
	}
}

func TestResolverClockIsUsedForTimestamps(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewResolver(s)
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }
	ctx := context.Background()
	seedBox(t, s, "B800", "S1", 1, "NVG050")

	if _, err := r.ResolvePreAcceptance(ctx, PreAcceptanceInput{Box: "B800", StoreID: "S1", Username: "ayse"}); err != nil {
		t.Fatalf("ResolvePreAcceptance: %v", err)
	}
	items, _ := s.FindByBox(ctx, "B800")
	if !items[0].PreAcceptanceAt.Equal(fixed) {
		t.Errorf("expected timestamp %v, got %v", fixed, items[0].PreAcceptanceAt)
	}
}
