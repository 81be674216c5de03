package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"solestore/internal/promotions/models"
)

// MemoryStore is an in-memory promotion store for tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	promotions []models.Promotion
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListActive(_ context.Context, now time.Time) ([]models.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []models.Promotion
	for _, p := range s.promotions {
		if p.Active(now) {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	return active, nil
}

func (s *MemoryStore) Create(_ context.Context, p models.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promotions = append(s.promotions, p)
	return nil
}
