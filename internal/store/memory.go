package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"depo-system/internal/database/models"
)

// MemoryStore provides in-memory item storage. It backs the unit
// tests and mirrors the semantics of GormStore.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	items  []models.ShipmentItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Verify interface compliance
var _ ItemStore = (*MemoryStore)(nil)

func (s *MemoryStore) FindByBox(ctx context.Context, box string) ([]models.ShipmentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []models.ShipmentItem
	for _, item := range s.items {
		if item.Box == box {
			found = append(found, item)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

func (s *MemoryStore) FindByQRCode(ctx context.Context, qrCode string) (*models.ShipmentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.QRCode == qrCode {
			copied := item
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Insert(ctx context.Context, item *models.ShipmentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.QRCode == item.QRCode {
			return ErrDuplicate
		}
	}
	item.ID = s.nextID
	s.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	s.items = append(s.items, *item)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, item *models.ShipmentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			item.UpdatedAt = time.Now()
			s.items[i] = *item
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) UpdateBoxPreAcceptance(ctx context.Context, box string, status models.PreAcceptanceStatus, by string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.items {
		if s.items[i].Box == box {
			s.items[i].PreAcceptanceStatus = status
			s.items[i].PreAcceptanceBy = by
			s.items[i].PreAcceptanceAt = &at
			s.items[i].UpdatedAt = time.Now()
			updated++
		}
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MemoryStore) InsertBatch(ctx context.Context, items []models.ShipmentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.items))
	for _, existing := range s.items {
		seen[existing.QRCode] = true
	}
	for _, item := range items {
		if seen[item.QRCode] {
			continue
		}
		item.ID = s.nextID
		s.nextID++
		item.CreatedAt = time.Now()
		item.UpdatedAt = item.CreatedAt
		s.items = append(s.items, item)
		seen[item.QRCode] = true
	}
	return nil
}

func (s *MemoryStore) ListByStore(ctx context.Context, storeID string) ([]models.ShipmentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []models.ShipmentItem
	for _, item := range s.items {
		if item.ToLocationID == storeID {
			found = append(found, item)
		}
	}
	sortByBoxThenID(found)
	return found, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]models.ShipmentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]models.ShipmentItem, len(s.items))
	copy(found, s.items)
	sortByBoxThenID(found)
	return found, nil
}

func sortByBoxThenID(items []models.ShipmentItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Box != items[j].Box {
			return items[i].Box < items[j].Box
		}
		return items[i].ID < items[j].ID
	})
}
