package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/google/uuid"
)

// In-memory repositories. They back the test suite and local development
// without a database; the postgres implementations are the production path.

// inMemorySubscriptionRepo keeps subscriptions in a map keyed by provider id.
type inMemorySubscriptionRepo struct {
	mu   sync.RWMutex
	subs map[string]domain.Subscription
	log  *logger.Logger
}

// NewInMemorySubscriptionRepository creates an empty in-memory repository.
func NewInMemorySubscriptionRepository(log *logger.Logger) SubscriptionRepository {
	return &inMemorySubscriptionRepo{
		subs: make(map[string]domain.Subscription),
		log:  log,
	}
}

func (r *inMemorySubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	r.subs[sub.ProviderID] = *sub
	return nil
}

func (r *inMemorySubscriptionRepo) GetByProviderIDAndUser(ctx context.Context, providerID, userID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subs[providerID]
	if !ok || sub.UserID != userID {
		return nil, ErrNotFound
	}
	out := sub
	return &out, nil
}

func (r *inMemorySubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Subscription{}
	for _, sub := range r.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *inMemorySubscriptionRepo) MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, sub := range r.subs {
		if sub.ID == id {
			if sub.Status == domain.SubscriptionStatusCancelled {
				return ErrNotFound
			}
			sub.Status = domain.SubscriptionStatusCancelled
			cancelled := at
			sub.CancelledAt = &cancelled
			r.subs[key] = sub
			return nil
		}
	}
	return ErrNotFound
}

// InMemoryProfileRepository keeps profiles in a map keyed by user id. It is
// exported so tests can seed profiles directly.
type InMemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	log      *logger.Logger
}

// NewInMemoryProfileRepository creates an empty in-memory repository.
func NewInMemoryProfileRepository(log *logger.Logger) *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		profiles: make(map[string]domain.Profile),
		log:      log,
	}
}

// Seed inserts or replaces a profile row.
func (r *InMemoryProfileRepository) Seed(profile domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
}

func (r *InMemoryProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := profile
	return &out, nil
}

func (r *InMemoryProfileRepository) UpdatePhotoURL(ctx context.Context, userID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	profile.PhotoURL = &url
	profile.UpdatedAt = &now
	r.profiles[userID] = profile
	return nil
}

// inMemoryPrayerRepo keeps prayer requests in a map keyed by id.
type inMemoryPrayerRepo struct {
	mu      sync.RWMutex
	prayers map[uuid.UUID]domain.PrayerRequest
	log     *logger.Logger
}

// NewInMemoryPrayerRepository creates an empty in-memory repository.
func NewInMemoryPrayerRepository(log *logger.Logger) PrayerRepository {
	return &inMemoryPrayerRepo{
		prayers: make(map[uuid.UUID]domain.PrayerRequest),
		log:     log,
	}
}

func (r *inMemoryPrayerRepo) Create(ctx context.Context, p *domain.PrayerRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = domain.PrayerRequestStatusActive
	}
	r.prayers[p.ID] = *p
	return nil
}

func (r *inMemoryPrayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prayers[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *inMemoryPrayerRepo) ListActive(ctx context.Context, limit int) ([]domain.PrayerRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.PrayerRequest{}
	for _, p := range r.prayers {
		if p.Status == domain.PrayerRequestStatusActive {
			out = append(out, p)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *inMemoryPrayerRepo) ListByUser(ctx context.Context, userID string) ([]domain.PrayerRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.PrayerRequest{}
	for _, p := range r.prayers {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *inMemoryPrayerRepo) IncrementPrayerCount(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prayers[id]
	if !ok || p.Status != domain.PrayerRequestStatusActive {
		return ErrNotFound
	}
	p.PrayerCount++
	r.prayers[id] = p
	return nil
}

func (r *inMemoryPrayerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PrayerRequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prayers[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	r.prayers[id] = p
	return nil
}
