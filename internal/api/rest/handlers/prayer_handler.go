package handlers

import (
	"errors"
	"net/http"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/service"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/req"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrayerHandler handles the community prayer request routes.
type PrayerHandler struct {
	service *service.PrayerService
	log     *logger.Logger
	zapLog  *zap.Logger
}

// NewPrayerHandler creates a new prayer request handler
func NewPrayerHandler(svc *service.PrayerService, log *logger.Logger, zapLog *zap.Logger) *PrayerHandler {
	return &PrayerHandler{
		service: svc,
		log:     log,
		zapLog:  zapLog,
	}
}

// Create stores a new prayer request for the caller.
func (h *PrayerHandler) Create(c *gin.Context) {
	userID := c.GetString(string(middleware.ContextUserIDKey))
	userName := c.GetString(string(middleware.ContextUserNameKey))

	body, err := req.HandleBody[domain.CreatePrayerRequestInput](c.Writer, c.Request, h.zapLog)
	if err != nil {
		return
	}

	prayer, err := h.service.Create(c.Request.Context(), userID, userName, *body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pedido de oração inválido"})
			return
		}

		h.log.Error("Failed to create prayer request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criar o pedido"})
		return
	}

	h.log.Info("Created prayer request %s", prayer.ID)
	c.JSON(http.StatusCreated, prayer)
}

// List returns the public feed of active requests.
func (h *PrayerHandler) List(c *gin.Context) {
	prayers, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list prayer requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar os pedidos"})
		return
	}

	c.JSON(http.StatusOK, prayers)
}

// ListMine returns the caller's own requests.
func (h *PrayerHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(middleware.ContextUserIDKey))

	prayers, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list prayer requests for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar os pedidos"})
		return
	}

	c.JSON(http.StatusOK, prayers)
}

// PrayFor increments the prayer counter of an active request.
func (h *PrayerHandler) PrayFor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	if err := h.service.PrayFor(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
			return
		}

		h.log.Error("Failed to record prayer for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível registrar a oração"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Remove soft-removes a request. Admin only.
func (h *PrayerHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
			return
		}

		h.log.Error("Failed to remove prayer request %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível remover o pedido"})
		return
	}

	h.log.Info("Prayer request %s removed", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
