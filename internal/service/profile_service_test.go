package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	err         error
	key         string
	contentType string
	payload     []byte
	calls       int
}

func (f *fakeObjectStore) Put(ctx context.Context, key, contentType string, payload []byte) (string, error) {
	f.calls++
	f.key = key
	f.contentType = contentType
	f.payload = payload
	if f.err != nil {
		return "", f.err
	}
	return "https://media.example.com/" + key, nil
}

type fakeUploadMetrics struct {
	uploads int
}

func (f *fakeUploadMetrics) IncAvatarUploaded() { f.uploads++ }

var testUploadInstant = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newProfileFixture(t *testing.T, store *fakeObjectStore) (*ProfileService, *repository.InMemoryProfileRepository, *fakeUploadMetrics) {
	t.Helper()
	log := newTestLogger()
	repo := repository.NewInMemoryProfileRepository(log)
	m := &fakeUploadMetrics{}
	svc := NewProfileService(repo, store, m, log)
	svc.now = func() time.Time { return testUploadInstant }
	return svc, repo, m
}

func TestAvatarObjectKey(t *testing.T) {
	key := AvatarObjectKey("user-1", "photo.PNG", testUploadInstant)
	assert.Equal(t, "avatars/user-1/1705320000000.png", key)

	noExt := AvatarObjectKey("user-1", "photo", testUploadInstant)
	assert.Equal(t, "avatars/user-1/1705320000000", noExt)

	later := AvatarObjectKey("user-1", "photo.png", testUploadInstant.Add(time.Millisecond))
	assert.NotEqual(t, key, later, "keys from different instants must differ")

	// Two uploads in the same millisecond collide and the second write wins.
	collision := AvatarObjectKey("user-1", "other.png", testUploadInstant)
	assert.Equal(t, key, collision, "same user and instant produce the same key")
}

func TestUpdateAvatar_SameInstantOverwritesKey(t *testing.T) {
	store := &fakeObjectStore{}
	svc, repo, _ := newProfileFixture(t, store)
	repo.Seed(domain.Profile{ID: "user-1", Name: "Maria", Email: "maria@example.com"})

	_, err := svc.UpdateAvatar(context.Background(), "user-1", "first.jpg", "image/jpeg", []byte("first"))
	require.NoError(t, err)
	firstKey := store.key

	url, err := svc.UpdateAvatar(context.Background(), "user-1", "second.jpg", "image/jpeg", []byte("second"))
	require.NoError(t, err)

	assert.Equal(t, firstKey, store.key, "a second upload in the same millisecond reuses the key")
	assert.Equal(t, []byte("second"), store.payload)

	profile, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile.PhotoURL)
	assert.Equal(t, url, *profile.PhotoURL)
}

func TestUpdateAvatar_Success(t *testing.T) {
	store := &fakeObjectStore{}
	svc, repo, m := newProfileFixture(t, store)
	repo.Seed(domain.Profile{ID: "user-1", Name: "Maria", Email: "maria@example.com"})

	url, err := svc.UpdateAvatar(context.Background(), "user-1", "selfie.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "avatars/user-1/1705320000000.jpg", store.key)
	assert.Equal(t, "image/jpeg", store.contentType)
	assert.Equal(t, []byte("jpeg-bytes"), store.payload)
	assert.Equal(t, "https://media.example.com/avatars/user-1/1705320000000.jpg", url)
	assert.Equal(t, 1, m.uploads)

	profile, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile.PhotoURL)
	assert.Equal(t, url, *profile.PhotoURL)
}

func TestUpdateAvatar_StoreFailureLeavesProfileUntouched(t *testing.T) {
	store := &fakeObjectStore{err: domain.NewExternalServiceError("storage", 403, "denied", nil)}
	svc, repo, m := newProfileFixture(t, store)
	repo.Seed(domain.Profile{ID: "user-1", Name: "Maria", Email: "maria@example.com"})

	_, err := svc.UpdateAvatar(context.Background(), "user-1", "selfie.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.Error(t, err)
	assert.Equal(t, 0, m.uploads)

	profile, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, profile.PhotoURL, "a failed upload must not point the profile at anything")
}

func TestUpdateAvatar_MissingProfile(t *testing.T) {
	store := &fakeObjectStore{}
	svc, _, m := newProfileFixture(t, store)

	_, err := svc.UpdateAvatar(context.Background(), "ghost", "selfie.jpg", "image/jpeg", []byte("x"))
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.Equal(t, 0, m.uploads)
}

func TestGetProfile(t *testing.T) {
	store := &fakeObjectStore{}
	svc, repo, _ := newProfileFixture(t, store)
	repo.Seed(domain.Profile{ID: "user-1", Name: "Maria", Email: "maria@example.com"})

	profile, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Maria", profile.Name)

	_, err = svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
