package service

import (
	"context"
	"errors"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/integration/mercadopago"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
)

// PreapprovalCanceller is the slice of the payment provider the cancellation
// flow needs.
type PreapprovalCanceller interface {
	CancelPreapproval(ctx context.Context, preapprovalID string) error
}

// SubscriptionService manages recurring donations.
type SubscriptionService struct {
	repo     repository.SubscriptionRepository
	provider PreapprovalCanceller
	log      *logger.Logger
	now      func() time.Time
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo repository.SubscriptionRepository, provider PreapprovalCanceller, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		provider: provider,
		log:      log,
		now:      time.Now,
	}
}

// Cancel cancels the caller's recurring donation. The lookup carries both the
// provider id and the caller id, so a foreign subscription is simply not
// found. The provider is called before the local row is touched; a provider
// 404 counts as success since the remote side has nothing left to cancel.
// The local row is the LAST thing mutated: a crash after the provider call
// leaves the row stale, which an out-of-band reconciliation would have to fix.
func (s *SubscriptionService) Cancel(ctx context.Context, userID, providerSubscriptionID string) (*domain.Subscription, error) {
	sub, err := s.repo.GetByProviderIDAndUser(ctx, providerSubscriptionID, userID)
	if err != nil {
		return nil, err
	}

	if sub.Status == domain.SubscriptionStatusCancelled {
		s.log.Warn("Subscription %s is already cancelled", providerSubscriptionID)
		return nil, domain.ErrAlreadyCancelled
	}

	err = s.provider.CancelPreapproval(ctx, providerSubscriptionID)
	if err != nil && !errors.Is(err, mercadopago.ErrPreapprovalNotFound) {
		return nil, err
	}

	cancelledAt := s.now().UTC()
	if err := s.repo.MarkCancelled(ctx, sub.ID, cancelledAt); err != nil {
		return nil, err
	}

	sub.Status = domain.SubscriptionStatusCancelled
	sub.CancelledAt = &cancelledAt

	s.log.Info("Subscription %s cancelled for user %s", providerSubscriptionID, userID)
	return sub, nil
}

// ListByUser returns the caller's subscriptions, newest first.
func (s *SubscriptionService) ListByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}
