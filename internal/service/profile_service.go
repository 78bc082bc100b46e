package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/metrics"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
)

// ObjectPutter is the slice of the object store the avatar flow needs.
type ObjectPutter interface {
	Put(ctx context.Context, key, contentType string, payload []byte) (string, error)
}

// ProfileService updates user profiles, including the signed avatar upload.
type ProfileService struct {
	repo    repository.ProfileRepository
	store   ObjectPutter
	metrics metrics.UploadMetrics
	log     *logger.Logger
	now     func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(repo repository.ProfileRepository, store ObjectPutter, m metrics.UploadMetrics, log *logger.Logger) *ProfileService {
	return &ProfileService{
		repo:    repo,
		store:   store,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// AvatarObjectKey builds the object key for an avatar upload: all of a
// user's uploads live under one prefix, and the millisecond timestamp keeps
// rapid repeat uploads from colliding. Two uploads by the same user in the
// same millisecond share a key; that is the documented collision case.
func AvatarObjectKey(userID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("avatars/%s/%d%s", userID, now.UnixMilli(), ext)
}

// UpdateAvatar uploads the avatar bytes and, only after the store confirms
// the write, points the profile row at the new public URL. A failed upload
// never touches the row; a failed row update after a confirmed upload leaves
// an orphaned object behind, which is an accepted leak.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID, filename, contentType string, payload []byte) (string, error) {
	key := AvatarObjectKey(userID, filename, s.now())

	publicURL, err := s.store.Put(ctx, key, contentType, payload)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdatePhotoURL(ctx, userID, publicURL); err != nil {
		s.log.Error("Avatar uploaded but profile update failed for user %s: %v", userID, err)
		return "", err
	}

	s.metrics.IncAvatarUploaded()
	s.log.Info("Avatar updated for user %s", userID)
	return publicURL, nil
}

// Get returns the caller's profile row.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, userID)
}
