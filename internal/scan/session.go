package scan

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// Status of a scanning session. A session is one operator's run of
// the lightweight scanning tool; it is created ongoing and completes
// exactly once.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

var (
	ErrSessionCompleted = errors.New("session already completed")
	ErrEntryNotFound    = errors.New("entry not found in session")
)

// Entry is one scanned code within a session. Removed entries are
// soft-marked, never dropped.
type Entry struct {
	QRCode    string    `json:"qr_code"`
	ScannedAt time.Time `json:"scanned_at"`
	Removed   bool      `json:"removed"`
}

type Session struct {
	ID          string     `json:"id"`
	StoreID     string     `json:"store_id"`
	Status      Status     `json:"status"`
	StartedBy   string     `json:"started_by"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Entries     []Entry    `json:"entries"`
}

func NewSession(storeID, startedBy string) *Session {
	return &Session{
		ID:        newSessionID(),
		StoreID:   storeID,
		Status:    StatusOngoing,
		StartedBy: startedBy,
		StartedAt: time.Now(),
	}
}

// Add records a scanned code. Re-scanning a code that is already in
// the session reports a duplicate; re-scanning a removed code revives
// the original entry.
func (s *Session) Add(qrCode string) (duplicate bool, err error) {
	if s.Status == StatusCompleted {
		return false, ErrSessionCompleted
	}
	for i := range s.Entries {
		if s.Entries[i].QRCode == qrCode {
			if s.Entries[i].Removed {
				s.Entries[i].Removed = false
				s.Entries[i].ScannedAt = time.Now()
				return false, nil
			}
			return true, nil
		}
	}
	s.Entries = append(s.Entries, Entry{QRCode: qrCode, ScannedAt: time.Now()})
	return false, nil
}

// Remove soft-marks an entry as removed.
func (s *Session) Remove(qrCode string) error {
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	for i := range s.Entries {
		if s.Entries[i].QRCode == qrCode && !s.Entries[i].Removed {
			s.Entries[i].Removed = true
			return nil
		}
	}
	return ErrEntryNotFound
}

// Complete closes the session. Completing twice is an error.
func (s *Session) Complete() error {
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	now := time.Now()
	s.Status = StatusCompleted
	s.CompletedAt = &now
	return nil
}

// ActiveCount is the number of entries not soft-removed.
func (s *Session) ActiveCount() int {
	n := 0
	for _, e := range s.Entries {
		if !e.Removed {
			n++
		}
	}
	return n
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
