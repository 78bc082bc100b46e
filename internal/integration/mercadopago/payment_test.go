package mercadopago

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logger.Logger {
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return log
}

func TestCreatePayment_Approved(t *testing.T) {
	var gotPath, gotAuth, gotIdempotency string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("X-Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 123456789,
			"status": "approved",
			"status_detail": "accredited",
			"transaction_amount": 50.0,
			"installments": 1
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{AccessToken: "TEST-token", BaseURL: server.URL}, newTestLogger())

	resp, err := client.CreatePayment(context.Background(), PaymentRequest{
		TransactionAmount: 50.0,
		Token:             "card-token-abc",
		Installments:      1,
		PaymentMethodID:   "visa",
		Payer: PayerData{
			Email:          "maria@example.com",
			Identification: IdentificationData{Type: "CPF", Number: "12345678900"},
		},
	}, "idem-key-1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/payments", gotPath)
	assert.Equal(t, "Bearer TEST-token", gotAuth)
	assert.Equal(t, "idem-key-1", gotIdempotency)

	assert.Equal(t, 50.0, gotBody["transaction_amount"])
	assert.Equal(t, "card-token-abc", gotBody["token"])
	assert.Equal(t, "visa", gotBody["payment_method_id"])
	payer := gotBody["payer"].(map[string]interface{})
	assert.Equal(t, "maria@example.com", payer["email"])

	assert.Equal(t, int64(123456789), resp.ID)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "accredited", resp.StatusDetail)
}

func TestCreatePayment_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid card token","error":"bad_request","status":400}`))
	}))
	defer server.Close()

	client := NewClient(Config{AccessToken: "TEST-token", BaseURL: server.URL}, newTestLogger())

	_, err := client.CreatePayment(context.Background(), PaymentRequest{
		TransactionAmount: 10,
		Token:             "bad-token",
		Payer:             PayerData{Email: "x@example.com"},
	}, "idem-key-2")
	require.Error(t, err)

	var external *domain.ExternalServiceError
	require.ErrorAs(t, err, &external)
	assert.Equal(t, "mercadopago", external.Service)
	assert.Equal(t, http.StatusBadRequest, external.StatusCode)
	assert.Contains(t, external.Body, "Invalid card token")
}

func TestCreatePayment_DefaultBaseURL(t *testing.T) {
	client := NewClient(Config{AccessToken: "TEST-token"}, newTestLogger())
	assert.Equal(t, "https://api.mercadopago.com", client.BaseURL())
}
