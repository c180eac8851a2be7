package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"doorlist/internal/guest/models"
	"doorlist/internal/sentinel"
	"doorlist/pkg/strfold"
)

// Error Contract:
// All store methods follow this pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
//
// InMemoryStore keeps guests in memory. It backs tests and the no-database
// development mode.
type InMemoryStore struct {
	mu     sync.RWMutex
	guests map[string]*models.Guest
	now    func() time.Time
}

// New constructs an empty in-memory guest store.
func New() *InMemoryStore {
	return &InMemoryStore{
		guests: make(map[string]*models.Guest),
		now:    time.Now,
	}
}

// WithClock overrides the clock used for check-in timestamps. Tests only.
func (s *InMemoryStore) WithClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

func (s *InMemoryStore) Save(_ context.Context, g *models.Guest) error {
	if g == nil {
		return fmt.Errorf("guest is required: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	s.guests[g.ID] = &cp
	return nil
}

// FindByID returns the guest with the given id. An empty eventID matches any
// event; this is what legacy credential resolution relies on.
func (s *InMemoryStore) FindByID(_ context.Context, guestID, eventID string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guests[guestID]
	if !ok || (eventID != "" && g.EventID != eventID) {
		return nil, fmt.Errorf("guest not found: %w", sentinel.ErrNotFound)
	}
	cp := *g
	return &cp, nil
}

// FindByName returns guests in one event whose name contains the query,
// case- and accent-insensitively.
func (s *InMemoryStore) FindByName(_ context.Context, eventID, name string) ([]*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Guest
	for _, g := range s.guests {
		if g.EventID == eventID && strfold.Contains(g.Name, name) {
			cp := *g
			out = append(out, &cp)
		}
	}
	sortGuests(out)
	return out, nil
}

// FindByNameAnyEvent is FindByName without an event scope.
func (s *InMemoryStore) FindByNameAnyEvent(_ context.Context, name string) ([]*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Guest
	for _, g := range s.guests {
		if strfold.Contains(g.Name, name) {
			cp := *g
			out = append(out, &cp)
		}
	}
	sortGuests(out)
	return out, nil
}

// MarkCheckedIn sets the check-in timestamp if it is not already set and
// returns the stored record. Calling it twice is safe and returns the same
// CheckedInAt; the mark is never cleared.
func (s *InMemoryStore) MarkCheckedIn(_ context.Context, guestID string) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guests[guestID]
	if !ok {
		return nil, fmt.Errorf("guest not found: %w", sentinel.ErrNotFound)
	}
	if g.CheckedInAt == nil {
		at := s.now().UTC()
		g.CheckedInAt = &at
	}
	cp := *g
	return &cp, nil
}

// Map iteration order is random; callers expect stable candidate lists.
func sortGuests(gs []*models.Guest) {
	sort.Slice(gs, func(i, j int) bool {
		if gs[i].Name != gs[j].Name {
			return gs[i].Name < gs[j].Name
		}
		return gs[i].ID < gs[j].ID
	})
}
