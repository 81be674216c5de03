package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"solestore/internal/promotions/models"
	dErrors "solestore/pkg/domain-errors"
)

// Store is the promotion persistence boundary.
type Store interface {
	ListActive(ctx context.Context, now time.Time) ([]models.Promotion, error)
	Create(ctx context.Context, p models.Promotion) error
}

// Clock returns the current time; injectable for tests.
type Clock func() time.Time

// Service lists active promotions and accepts admin-created ones.
type Service struct {
	store  Store
	logger *slog.Logger
	clock  Clock
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for testability.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListActive returns only promotions that have not expired.
func (s *Service) ListActive(ctx context.Context) ([]models.Promotion, error) {
	promotions, err := s.store.ListActive(ctx, s.clock())
	if err != nil {
		s.logger.ErrorContext(ctx, "promotion list failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching promotions")
	}
	return promotions, nil
}

// Create validates and stores a new promotion.
func (s *Service) Create(ctx context.Context, p models.Promotion) (models.Promotion, error) {
	var details []string
	if strings.TrimSpace(p.Title) == "" {
		details = append(details, "Title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		details = append(details, "Description is required")
	}
	if p.DiscountPercentage <= 0 || p.DiscountPercentage > 100 {
		details = append(details, "Discount percentage must be between 1 and 100")
	}
	if p.ValidUntil.IsZero() {
		details = append(details, "Valid until date is required")
	}
	if len(details) > 0 {
		return models.Promotion{}, dErrors.New(dErrors.CodeValidation, "Validation failed").WithDetails(details...)
	}

	p.ID = uuid.New()
	p.CreatedAt = s.clock()
	if err := s.store.Create(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "promotion creation failed", "error", err)
		return models.Promotion{}, dErrors.Wrap(err, dErrors.CodeInternal, "Error creating promotion")
	}
	return p, nil
}
