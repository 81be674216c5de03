package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"solestore/internal/auth/models"
	"solestore/pkg/platform/sentinel"
)

// MemoryStore is an in-memory user store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return fmt.Errorf("create user: %w", sentinel.ErrConflict)
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, fmt.Errorf("find user: %w", sentinel.ErrNotFound)
	}
	return s.byID[id], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return models.User{}, fmt.Errorf("find user: %w", sentinel.ErrNotFound)
	}
	return user, nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, id uuid.UUID, firstName, lastName, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("update profile: %w", sentinel.ErrNotFound)
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Phone = phone
	s.byID[id] = user
	return nil
}

func (s *MemoryStore) HasAdmin(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.byID {
		if user.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}
