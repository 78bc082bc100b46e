package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SubscriptionRepository persistence of recurring donations
type SubscriptionRepository interface {
	// GetByProviderIDAndUser looks a subscription up by provider id AND owner
	// in a single query, so authorization and lookup cannot diverge.
	GetByProviderIDAndUser(ctx context.Context, providerID, userID string) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Subscription, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error
	Create(ctx context.Context, sub *domain.Subscription) error
}

// postgresSubscriptionRepo implements SubscriptionRepository for PostgreSQL.
type postgresSubscriptionRepo struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresSubscriptionRepository creates the PostgreSQL-backed repository.
func NewPostgresSubscriptionRepository(db *sqlx.DB, log *logger.Logger) SubscriptionRepository {
	return &postgresSubscriptionRepo{
		db:  db,
		log: log,
	}
}

// Create stores a new subscription, used by the agreement confirmation path.
func (r *postgresSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO subscriptions (
            id, user_id, provider_subscription_id, status, amount,
            payer_email, next_payment_date, created_at, cancelled_at
        ) VALUES (
            :id, :user_id, :provider_subscription_id, :status, :amount,
            :payer_email, :next_payment_date, :created_at, :cancelled_at
        )`
	_, err := r.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		r.log.Error("Failed to create subscription in DB: %v (provider_id=%s user_id=%s)", err, sub.ProviderID, sub.UserID)
		return fmt.Errorf("repository: failed to create subscription: %w", err)
	}

	r.log.Debug("Created subscription %s for user %s", sub.ProviderID, sub.UserID)
	return nil
}

// GetByProviderIDAndUser returns the subscription only when both predicates
// match; otherwise ErrNotFound.
func (r *postgresSubscriptionRepo) GetByProviderIDAndUser(ctx context.Context, providerID, userID string) (*domain.Subscription, error) {
	var sub domain.Subscription
	query := `
        SELECT id, user_id, provider_subscription_id, status, amount,
               payer_email, next_payment_date, created_at, cancelled_at
        FROM subscriptions
        WHERE provider_subscription_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &sub, query, providerID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warn("Subscription not found or not owned by caller (provider_id=%s)", providerID)
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get subscription from DB: %v (provider_id=%s)", err, providerID)
		return nil, fmt.Errorf("repository: failed to get subscription: %w", err)
	}

	return &sub, nil
}

// ListByUser returns all of a user's subscriptions, newest first.
func (r *postgresSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	subs := []domain.Subscription{}
	query := `
        SELECT id, user_id, provider_subscription_id, status, amount,
               payer_email, next_payment_date, created_at, cancelled_at
        FROM subscriptions
        WHERE user_id = $1
        ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &subs, query, userID)
	if err != nil {
		r.log.Error("Failed to list subscriptions for user %s: %v", userID, err)
		return nil, fmt.Errorf("repository: failed to list subscriptions: %w", err)
	}

	return subs, nil
}

// MarkCancelled flips the row to cancelled with the given timestamp. The
// transition is one-directional: an already-cancelled row is never touched.
func (r *postgresSubscriptionRepo) MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
        UPDATE subscriptions
        SET status = $1, cancelled_at = $2
        WHERE id = $3 AND status <> $1`

	result, err := r.db.ExecContext(ctx, query, domain.SubscriptionStatusCancelled, at, id)
	if err != nil {
		r.log.Error("Failed to mark subscription %s cancelled: %v", id, err)
		return fmt.Errorf("repository: failed to mark subscription cancelled: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warn("Cancellation update affected 0 rows (id=%s)", id)
		return ErrNotFound
	}

	r.log.Info("Subscription %s marked cancelled", id)
	return nil
}
