package service

import (
	"context"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/integration/mercadopago"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/metrics"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/google/uuid"
)

// CardCharger is the slice of the payment provider the donation flow needs.
type CardCharger interface {
	CreatePayment(ctx context.Context, payment mercadopago.PaymentRequest, idempotencyKey string) (*mercadopago.PaymentResponse, error)
}

// DonationService charges one-time card donations. Attempts are never
// persisted; the provider is the system of record for payment history.
type DonationService struct {
	provider CardCharger
	metrics  metrics.DonationMetrics
	log      *logger.Logger
}

// NewDonationService creates a new donation service
func NewDonationService(provider CardCharger, m metrics.DonationMetrics, log *logger.Logger) *DonationService {
	return &DonationService{
		provider: provider,
		metrics:  m,
		log:      log,
	}
}

// Charge validates the request, issues a single charge with a fresh
// idempotency key and normalizes the outcome. Approved and pending results
// come back as values; any other provider status is a PaymentRejectedError
// carrying the provider's status detail.
func (s *DonationService) Charge(ctx context.Context, req domain.DonationRequest) (*domain.DonationResult, error) {
	if req.Token == "" || req.TransactionAmount <= 0 || req.Payer.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	// One key per invocation: a retried client request is a new charge.
	idempotencyKey := uuid.NewString()

	payment := mercadopago.PaymentRequest{
		TransactionAmount: req.TransactionAmount,
		Token:             req.Token,
		Installments:      req.Installments,
		PaymentMethodID:   req.PaymentMethodID,
		IssuerID:          req.IssuerID,
		Payer: mercadopago.PayerData{
			Email: req.Payer.Email,
			Identification: mercadopago.IdentificationData{
				Type:   req.Payer.Identification.Type,
				Number: req.Payer.Identification.Number,
			},
		},
	}

	resp, err := s.provider.CreatePayment(ctx, payment, idempotencyKey)
	if err != nil {
		s.metrics.IncDonationFailed()
		return nil, err
	}

	result := &domain.DonationResult{
		ID:                resp.ID,
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		TransactionAmount: resp.TransactionAmount,
		Installments:      resp.Installments,
	}

	switch resp.Status {
	case "approved":
		s.metrics.IncDonationApproved()
		s.metrics.ObserveDonationAmount(resp.TransactionAmount)
		return result, nil
	case "in_process", "pending":
		s.metrics.IncDonationPending()
		return result, nil
	default:
		s.log.Warn("Payment %d rejected: %s (%s)", resp.ID, resp.Status, resp.StatusDetail)
		s.metrics.IncDonationRejected()
		return nil, &domain.PaymentRejectedError{Status: resp.Status, StatusDetail: resp.StatusDetail}
	}
}
