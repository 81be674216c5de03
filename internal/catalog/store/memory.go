package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"solestore/internal/catalog/models"
	"solestore/pkg/platform/sentinel"
)

// MemoryStore is an in-memory sneaker store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	sneakers map[int64]models.Sneaker
	nextID   int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		sneakers: make(map[int64]models.Sneaker),
		nextID:   1,
	}
}

func (s *MemoryStore) List(_ context.Context) ([]models.Sneaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sneakers := make([]models.Sneaker, 0, len(s.sneakers))
	for _, sneaker := range s.sneakers {
		sneakers = append(sneakers, sneaker)
	}
	sort.Slice(sneakers, func(i, j int) bool { return sneakers[i].ID < sneakers[j].ID })
	return sneakers, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (models.Sneaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sneaker, ok := s.sneakers[id]
	if !ok {
		return models.Sneaker{}, fmt.Errorf("find sneaker: %w", sentinel.ErrNotFound)
	}
	return sneaker, nil
}

func (s *MemoryStore) Create(_ context.Context, sneaker models.Sneaker) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sneaker.ID = s.nextID
	sneaker.CreatedAt = time.Now()
	s.nextID++
	s.sneakers[sneaker.ID] = sneaker
	return sneaker.ID, nil
}

func (s *MemoryStore) Update(_ context.Context, sneaker models.Sneaker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sneakers[sneaker.ID]; !ok {
		return fmt.Errorf("update sneaker: %w", sentinel.ErrNotFound)
	}
	s.sneakers[sneaker.ID] = sneaker
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sneakers[id]; !ok {
		return fmt.Errorf("delete sneaker: %w", sentinel.ErrNotFound)
	}
	delete(s.sneakers, id)
	return nil
}
