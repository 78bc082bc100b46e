package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
)

// PaymentRequest is the wire format of POST /v1/payments
type PaymentRequest struct {
	TransactionAmount float64   `json:"transaction_amount"`
	Token             string    `json:"token"`
	Installments      int       `json:"installments"`
	PaymentMethodID   string    `json:"payment_method_id,omitempty"`
	IssuerID          string    `json:"issuer_id,omitempty"`
	Payer             PayerData `json:"payer"`
}

// PayerData payer block of a payment request
type PayerData struct {
	Email          string             `json:"email"`
	Identification IdentificationData `json:"identification"`
}

// IdentificationData payer document block
type IdentificationData struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// PaymentResponse is the provider's payment object, reduced to what we use
type PaymentResponse struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail"`
	TransactionAmount float64 `json:"transaction_amount"`
	Installments      int     `json:"installments"`
}

// CreatePayment issues a single card charge. One idempotency key per call,
// generated by the caller; client retries are not deduplicated server-side.
func (c *Client) CreatePayment(ctx context.Context, payment PaymentRequest, idempotencyKey string) (*PaymentResponse, error) {
	c.log.Debug("Creating payment for payer %s", payment.Payer.Email)

	body, err := json.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/payments",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Error("Payment provider returned status %d: %s", resp.StatusCode, string(raw))
		return nil, domain.NewExternalServiceError("mercadopago", resp.StatusCode, string(raw), nil)
	}

	var paymentResp PaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&paymentResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.log.Info("Payment %d created with status %s (%s)", paymentResp.ID, paymentResp.Status, paymentResp.StatusDetail)
	return &paymentResp, nil
}
