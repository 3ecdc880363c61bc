package deliveries

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/itristenx/nova-notify/pkg/event"
)

// MemoryStorage is an in-memory Storage implementation.
// Suitable for development and testing.
type MemoryStorage struct {
	events  map[string]event.Event
	records []Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{events: make(map[string]event.Event)}
}

func (s *MemoryStorage) CreateEvent(ctx context.Context, ev event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID == "" {
		return fmt.Errorf("%w: event ID is required", ErrInvalidRecord)
	}
	if _, exists := s.events[ev.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEvent, ev.ID)
	}
	s.events[ev.ID] = ev
	return nil
}

// GetEvent returns a stored event, primarily for tests and audit tooling.
func (s *MemoryStorage) GetEvent(ctx context.Context, eventID string) (event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	return ev, ok
}

func (s *MemoryStorage) CreateDelivery(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.EventID == "" || rec.UserID == "" || rec.Channel == "" {
		return fmt.Errorf("%w: eventId, userId and channel are required", ErrInvalidRecord)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStorage) ListDeliveries(ctx context.Context, opts ListOptions) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if opts.UserID != "" && r.UserID != opts.UserID {
			continue
		}
		filtered = append(filtered, r)
	}

	// Newest first. Insertion order is no tiebreak guarantee for callers,
	// but a stable sort keeps results deterministic within equal stamps.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if limit := opts.limit(); len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}
