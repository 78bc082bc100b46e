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
	"go.uber.org/zap"
)

// SubscriptionHandler handles recurring donation routes.
type SubscriptionHandler struct {
	service *service.SubscriptionService
	log     *logger.Logger
	zapLog  *zap.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(svc *service.SubscriptionService, log *logger.Logger, zapLog *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: svc,
		log:     log,
		zapLog:  zapLog,
	}
}

// Cancel cancels the caller's recurring donation. A subscription owned by
// another user answers 404, the same as one that does not exist.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID := c.GetString(string(middleware.ContextUserIDKey))

	body, err := req.HandleBody[domain.CancelSubscriptionRequest](c.Writer, c.Request, h.zapLog)
	if err != nil {
		return
	}

	_, err = h.service.Cancel(c.Request.Context(), userID, body.SubscriptionID)
	if err != nil {
		var external *domain.ExternalServiceError

		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.log.Warn("Subscription %s not found for user %s", body.SubscriptionID, userID)
			c.JSON(http.StatusNotFound, gin.H{"error": "Assinatura não encontrada"})

		case errors.Is(err, domain.ErrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assinatura já cancelada"})

		case errors.As(err, &external):
			h.log.Warn("Provider error on cancellation: %v", external)
			c.Data(external.StatusCode, "application/json", []byte(external.Body))

		default:
			h.log.Error("Failed to cancel subscription %s: %v", body.SubscriptionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível cancelar a assinatura"})
		}
		return
	}

	c.JSON(http.StatusOK, domain.CancelSubscriptionResponse{
		Success: true,
		Message: "Assinatura cancelada com sucesso",
	})
}

// List returns the caller's subscriptions.
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID := c.GetString(string(middleware.ContextUserIDKey))

	subscriptions, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list subscriptions for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar as assinaturas"})
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}
