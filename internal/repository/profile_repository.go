package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/jmoiron/sqlx"
)

// ProfileRepository persistence of user profiles
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.Profile, error)
	// UpdatePhotoURL overwrites photo_url. Called only after a confirmed
	// object-store upload.
	UpdatePhotoURL(ctx context.Context, userID, url string) error
}

type postgresProfileRepo struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresProfileRepository creates the PostgreSQL-backed repository.
func NewPostgresProfileRepository(db *sqlx.DB, log *logger.Logger) ProfileRepository {
	return &postgresProfileRepo{
		db:  db,
		log: log,
	}
}

// GetByID returns the profile row for a user id.
func (r *postgresProfileRepo) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
        SELECT id, name, email, photo_url, updated_at
        FROM profiles
        WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warn("Profile not found (user_id=%s)", userID)
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get profile from DB: %v (user_id=%s)", err, userID)
		return nil, fmt.Errorf("repository: failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpdatePhotoURL sets the profile photo to the given public URL.
func (r *postgresProfileRepo) UpdatePhotoURL(ctx context.Context, userID, url string) error {
	query := `
        UPDATE profiles
        SET photo_url = $1, updated_at = $2
        WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), userID)
	if err != nil {
		r.log.Error("Failed to update profile photo: %v (user_id=%s)", err, userID)
		return fmt.Errorf("repository: failed to update profile photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warn("Photo update affected 0 rows (user_id=%s)", userID)
		return ErrNotFound
	}

	r.log.Debug("Profile photo updated for user %s", userID)
	return nil
}
