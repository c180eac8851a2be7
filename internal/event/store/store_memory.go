package store

import (
	"context"
	"fmt"
	"sync"

	"doorlist/internal/event/models"
	"doorlist/internal/sentinel"
)

// InMemoryStore keeps events in memory for tests and development mode.
// Same error contract as the guest store: ErrNotFound for missing entities.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string]*models.Event
}

// New constructs an empty in-memory event store.
func New() *InMemoryStore {
	return &InMemoryStore{events: make(map[string]*models.Event)}
}

func (s *InMemoryStore) Save(_ context.Context, ev *models.Event) error {
	if ev == nil {
		return fmt.Errorf("event is required: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ev
	s.events[ev.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, eventID string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[eventID]
	if !ok {
		return nil, fmt.Errorf("event not found: %w", sentinel.ErrNotFound)
	}
	cp := *ev
	return &cp, nil
}
