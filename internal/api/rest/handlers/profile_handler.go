package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/service"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/gin-gonic/gin"
)

// maxAvatarBytes caps avatar uploads at 5 MiB
const maxAvatarBytes = 5 << 20

// ProfileHandler handles profile routes, including the avatar upload relay.
type ProfileHandler struct {
	service *service.ProfileService
	log     *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(svc *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: svc,
		log:     log,
	}
}

// UploadAvatar relays a multipart avatar upload to the object store and
// points the caller's profile at the stored object.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString(string(middleware.ContextUserIDKey))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.log.Warn("Avatar upload without file from user %s: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo não enviado"})
		return
	}

	if fileHeader.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo muito grande"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível ler o arquivo"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		h.log.Error("Failed to read uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível ler o arquivo"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.service.UpdateAvatar(c.Request.Context(), userID, fileHeader.Filename, contentType, payload)
	if err != nil {
		var external *domain.ExternalServiceError

		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.log.Warn("Profile not found for user %s", userID)
			c.JSON(http.StatusNotFound, gin.H{"error": "Perfil não encontrado"})

		case errors.As(err, &external):
			h.log.Error("Storage error on avatar upload: %v", external)
			c.Data(http.StatusInternalServerError, "application/json", []byte(external.Body))

		default:
			h.log.Error("Failed to update avatar for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar a foto"})
		}
		return
	}

	c.JSON(http.StatusOK, domain.UploadAvatarResponse{Success: true, URL: url})
}

// GetProfile returns the caller's own profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(middleware.ContextUserIDKey))

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Perfil não encontrado"})
			return
		}

		h.log.Error("Failed to get profile for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar o perfil"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
