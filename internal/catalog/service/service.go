package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"solestore/internal/catalog/models"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/sentinel"
)

// Store is the sneaker persistence boundary the catalog service depends on.
type Store interface {
	List(ctx context.Context) ([]models.Sneaker, error)
	FindByID(ctx context.Context, id int64) (models.Sneaker, error)
	Create(ctx context.Context, sneaker models.Sneaker) (int64, error)
	Update(ctx context.Context, sneaker models.Sneaker) error
	Delete(ctx context.Context, id int64) error
}

// Service owns catalog reads and the admin CRUD surface.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns the catalog. An empty catalog serves the built-in sample
// dataset so a fresh install never renders an empty storefront.
func (s *Service) List(ctx context.Context) ([]models.Sneaker, error) {
	sneakers, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog list failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching sneakers")
	}
	if len(sneakers) == 0 {
		return models.SampleCatalog(), nil
	}
	return sneakers, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Sneaker, error) {
	sneaker, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Sneaker{}, dErrors.New(dErrors.CodeNotFound, "Sneaker not found")
		}
		return models.Sneaker{}, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching sneaker")
	}
	return sneaker, nil
}

// Create validates and inserts a new catalog item, returning its id.
func (s *Service) Create(ctx context.Context, sneaker models.Sneaker) (int64, error) {
	if err := validateSneaker(sneaker); err != nil {
		return 0, err
	}
	id, err := s.store.Create(ctx, sneaker)
	if err != nil {
		s.logger.ErrorContext(ctx, "sneaker creation failed", "error", err)
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "Error creating sneaker")
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, sneaker models.Sneaker) error {
	if err := validateSneaker(sneaker); err != nil {
		return err
	}
	if err := s.store.Update(ctx, sneaker); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Sneaker not found")
		}
		s.logger.ErrorContext(ctx, "sneaker update failed", "error", err, "sneaker_id", sneaker.ID)
		return dErrors.Wrap(err, dErrors.CodeInternal, "Error updating sneaker")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Sneaker not found")
		}
		s.logger.ErrorContext(ctx, "sneaker delete failed", "error", err, "sneaker_id", id)
		return dErrors.Wrap(err, dErrors.CodeInternal, "Error deleting sneaker")
	}
	return nil
}

func validateSneaker(sneaker models.Sneaker) error {
	var details []string
	if strings.TrimSpace(sneaker.Name) == "" {
		details = append(details, "Name is required")
	}
	if strings.TrimSpace(sneaker.Brand) == "" {
		details = append(details, "Brand is required")
	}
	if sneaker.Price <= 0 {
		details = append(details, "Price must be positive")
	}
	if sneaker.Stock < 0 {
		details = append(details, "Stock must not be negative")
	}
	if len(sneaker.Sizes) == 0 {
		details = append(details, "At least one size is required")
	}
	if len(details) > 0 {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").WithDetails(details...)
	}
	return nil
}
