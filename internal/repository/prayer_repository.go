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

// PrayerRepository persistence of prayer requests
type PrayerRepository interface {
	Create(ctx context.Context, p *domain.PrayerRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error)
	ListActive(ctx context.Context, limit int) ([]domain.PrayerRequest, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PrayerRequest, error)
	IncrementPrayerCount(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PrayerRequestStatus) error
}

type postgresPrayerRepo struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresPrayerRepository creates the PostgreSQL-backed repository.
func NewPostgresPrayerRepository(db *sqlx.DB, log *logger.Logger) PrayerRepository {
	return &postgresPrayerRepo{
		db:  db,
		log: log,
	}
}

// Create stores a new prayer request.
func (r *postgresPrayerRepo) Create(ctx context.Context, p *domain.PrayerRequest) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = domain.PrayerRequestStatusActive
	}

	query := `
        INSERT INTO prayer_requests (
            id, user_id, author_name, content, category, anonymous,
            prayer_count, status, created_at
        ) VALUES (
            :id, :user_id, :author_name, :content, :category, :anonymous,
            :prayer_count, :status, :created_at
        )`
	_, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		r.log.Error("Failed to create prayer request in DB: %v (user_id=%s)", err, p.UserID)
		return fmt.Errorf("repository: failed to create prayer request: %w", err)
	}

	r.log.Debug("Created prayer request %s", p.ID)
	return nil
}

// GetByID returns one prayer request.
func (r *postgresPrayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PrayerRequest, error) {
	var p domain.PrayerRequest
	query := `
        SELECT id, user_id, author_name, content, category, anonymous,
               prayer_count, status, created_at
        FROM prayer_requests
        WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get prayer request from DB: %v (id=%s)", err, id)
		return nil, fmt.Errorf("repository: failed to get prayer request: %w", err)
	}

	return &p, nil
}

// ListActive returns the newest active requests for the public feed.
func (r *postgresPrayerRepo) ListActive(ctx context.Context, limit int) ([]domain.PrayerRequest, error) {
	prayers := []domain.PrayerRequest{}
	query := `
        SELECT id, user_id, author_name, content, category, anonymous,
               prayer_count, status, created_at
        FROM prayer_requests
        WHERE status = $1
        ORDER BY created_at DESC
        LIMIT $2`

	err := r.db.SelectContext(ctx, &prayers, query, domain.PrayerRequestStatusActive, limit)
	if err != nil {
		r.log.Error("Failed to list active prayer requests: %v", err)
		return nil, fmt.Errorf("repository: failed to list prayer requests: %w", err)
	}

	return prayers, nil
}

// ListByUser returns the caller's own requests, removed ones included.
func (r *postgresPrayerRepo) ListByUser(ctx context.Context, userID string) ([]domain.PrayerRequest, error) {
	prayers := []domain.PrayerRequest{}
	query := `
        SELECT id, user_id, author_name, content, category, anonymous,
               prayer_count, status, created_at
        FROM prayer_requests
        WHERE user_id = $1
        ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &prayers, query, userID)
	if err != nil {
		r.log.Error("Failed to list prayer requests for user %s: %v", userID, err)
		return nil, fmt.Errorf("repository: failed to list prayer requests: %w", err)
	}

	return prayers, nil
}

// IncrementPrayerCount adds one prayer to an active request.
func (r *postgresPrayerRepo) IncrementPrayerCount(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE prayer_requests
        SET prayer_count = prayer_count + 1
        WHERE id = $1 AND status = $2`

	result, err := r.db.ExecContext(ctx, query, id, domain.PrayerRequestStatusActive)
	if err != nil {
		r.log.Error("Failed to increment prayer count: %v (id=%s)", err, id)
		return fmt.Errorf("repository: failed to increment prayer count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateStatus moves a request to another lifecycle status (moderation).
func (r *postgresPrayerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PrayerRequestStatus) error {
	query := `
        UPDATE prayer_requests
        SET status = $1
        WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		r.log.Error("Failed to update prayer request status: %v (id=%s)", err, id)
		return fmt.Errorf("repository: failed to update prayer request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Prayer request %s moved to status %s", id, status)
	return nil
}
