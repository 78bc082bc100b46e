package service

import (
	"context"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/google/uuid"
)

// defaultFeedLimit caps the public feed page size
const defaultFeedLimit = 100

// PrayerService manages community prayer requests.
type PrayerService struct {
	repo repository.PrayerRepository
	log  *logger.Logger
}

// NewPrayerService creates a new prayer service
func NewPrayerService(repo repository.PrayerRepository, log *logger.Logger) *PrayerService {
	return &PrayerService{
		repo: repo,
		log:  log,
	}
}

// Create stores a new prayer request for the caller.
func (s *PrayerService) Create(ctx context.Context, userID, authorName string, input domain.CreatePrayerRequestInput) (*domain.PrayerRequest, error) {
	if input.Content == "" {
		return nil, domain.ErrInvalidInput
	}

	p := &domain.PrayerRequest{
		UserID:     userID,
		AuthorName: authorName,
		Content:    input.Content,
		Category:   input.Category,
		Anonymous:  input.Anonymous,
		Status:     domain.PrayerRequestStatusActive,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ListPublic returns the active feed with anonymous requests redacted. The
// redaction happens here, never in the handler, so no path can leak the
// author of an anonymous request.
func (s *PrayerService) ListPublic(ctx context.Context) ([]domain.PrayerRequest, error) {
	prayers, err := s.repo.ListActive(ctx, defaultFeedLimit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PrayerRequest, len(prayers))
	for i, p := range prayers {
		out[i] = p.Redacted()
	}
	return out, nil
}

// PrayFor increments the prayer counter of an active request.
func (s *PrayerService) PrayFor(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementPrayerCount(ctx, id)
}

// ListMine returns the caller's own requests, unredacted.
func (s *PrayerService) ListMine(ctx context.Context, userID string) ([]domain.PrayerRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Remove soft-removes a request (moderation). Rows are never deleted.
func (s *PrayerService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, domain.PrayerRequestStatusRemoved)
}
