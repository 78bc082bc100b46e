package handlers

import (
	"errors"
	"net/http"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/service"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/req"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DonationHandler handles one-time card donations. The same endpoint also
// hands the provider's public key to the browser so the card form can
// tokenize without a separate route.
type DonationHandler struct {
	service   *service.DonationService
	publicKey string
	log       *logger.Logger
	zapLog    *zap.Logger
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(svc *service.DonationService, publicKey string, log *logger.Logger, zapLog *zap.Logger) *DonationHandler {
	return &DonationHandler{
		service:   svc,
		publicKey: publicKey,
		log:       log,
		zapLog:    zapLog,
	}
}

// Donate processes POST /donations. A body with action "get-public-key"
// short-circuits to the public key; anything else is treated as a charge.
func (h *DonationHandler) Donate(c *gin.Context) {
	body, err := req.HandleBody[domain.DonationRequest](c.Writer, c.Request, h.zapLog)
	if err != nil {
		return
	}

	if body.Action == domain.ActionGetPublicKey {
		c.JSON(http.StatusOK, domain.PublicKeyResponse{PublicKey: h.publicKey})
		return
	}

	result, err := h.service.Charge(c.Request.Context(), *body)
	if err != nil {
		h.handleChargeError(c, err)
		return
	}

	h.log.Info("Donation %d processed with status %s", result.ID, result.Status)
	c.JSON(http.StatusOK, result)
}

func (h *DonationHandler) handleChargeError(c *gin.Context, err error) {
	var rejected *domain.PaymentRejectedError
	var external *domain.ExternalServiceError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.log.Warn("Invalid donation request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados de pagamento inválidos"})

	case errors.As(err, &rejected):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Pagamento recusado",
			"details": gin.H{
				"status":       rejected.Status,
				"statusDetail": rejected.StatusDetail,
			},
		})

	case errors.As(err, &external):
		// The provider already built a useful answer; relay it as-is.
		h.log.Warn("Provider error on donation: %v", external)
		c.Data(external.StatusCode, "application/json", []byte(external.Body))

	default:
		h.log.Error("Failed to process donation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível processar o pagamento"})
	}
}
