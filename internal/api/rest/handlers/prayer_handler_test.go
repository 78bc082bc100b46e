package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrayerRouter(t *testing.T) (*gin.Engine, *service.PrayerService) {
	t.Helper()
	log := newTestLogger()
	svc := service.NewPrayerService(repository.NewInMemoryPrayerRepository(log), log)
	handler := NewPrayerHandler(svc, log, newZapNop())

	r := gin.New()
	auth := newAuthMiddleware()
	r.GET("/api/v1/prayer-requests", handler.List)
	r.POST("/api/v1/prayer-requests", auth.RequireAuth(), handler.Create)
	r.GET("/api/v1/prayer-requests/mine", auth.RequireAuth(), handler.ListMine)
	r.POST("/api/v1/prayer-requests/:id/pray", auth.RequireAuth(), handler.PrayFor)
	r.DELETE("/api/v1/prayer-requests/:id", auth.RequireAuth(middleware.ScopeAdmin), handler.Remove)
	return r, svc
}

func TestCreatePrayerRequest_Unauthorized(t *testing.T) {
	r, _ := newPrayerRouter(t)

	jsonData, _ := json.Marshal(map[string]string{"content": "Pedido"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/prayer-requests", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreatePrayerRequest_Success(t *testing.T) {
	r, _ := newPrayerRouter(t)
	token := signTestToken(t, "user-1", "Maria", "")

	jsonData, _ := json.Marshal(map[string]any{"content": "Pela minha família", "category": "família"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/prayer-requests", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var prayer domain.PrayerRequest
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &prayer))
	assert.Equal(t, "Maria", prayer.AuthorName)
	assert.Equal(t, domain.PrayerRequestStatusActive, prayer.Status)
}

func TestCreatePrayerRequest_MissingContent(t *testing.T) {
	r, _ := newPrayerRouter(t)
	token := signTestToken(t, "user-1", "Maria", "")

	jsonData, _ := json.Marshal(map[string]string{"category": "saúde"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/prayer-requests", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListPrayerRequests_RedactsAnonymous(t *testing.T) {
	r, svc := newPrayerRouter(t)

	_, err := svc.Create(context.Background(), "user-2", "João", domain.CreatePrayerRequestInput{
		Content:   "Pedido anônimo",
		Anonymous: true,
	})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/prayer-requests", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var prayers []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &prayers))
	require.Len(t, prayers, 1)
	assert.Equal(t, domain.AnonymousAuthorName, prayers[0]["author_name"])
	_, hasUserID := prayers[0]["user_id"]
	assert.False(t, hasUserID, "anonymous requests must not expose the author id")
}

func TestPrayFor(t *testing.T) {
	r, svc := newPrayerRouter(t)

	prayer, err := svc.Create(context.Background(), "user-1", "Maria", domain.CreatePrayerRequestInput{Content: "Pedido"})
	require.NoError(t, err)
	token := signTestToken(t, "user-2", "João", "")

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/prayer-requests/"+prayer.ID.String()+"/pray", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestPrayFor_InvalidID(t *testing.T) {
	r, _ := newPrayerRouter(t)
	token := signTestToken(t, "user-2", "João", "")

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/prayer-requests/not-a-uuid/pray", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRemovePrayerRequest_RequiresAdminScope(t *testing.T) {
	r, svc := newPrayerRouter(t)

	prayer, err := svc.Create(context.Background(), "user-1", "Maria", domain.CreatePrayerRequestInput{Content: "Pedido"})
	require.NoError(t, err)

	memberToken := signTestToken(t, "user-1", "Maria", "")
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/prayer-requests/"+prayer.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	adminToken := signTestToken(t, "admin-1", "Pastor", middleware.ScopeAdmin)
	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/prayer-requests/"+prayer.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	// Removed requests vanish from the public feed.
	feed, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Empty(t, feed)
}
