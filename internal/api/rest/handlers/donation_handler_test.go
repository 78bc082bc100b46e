package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/integration/mercadopago"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCharger struct {
	resp  *mercadopago.PaymentResponse
	err   error
	calls int
}

func (s *stubCharger) CreatePayment(ctx context.Context, payment mercadopago.PaymentRequest, idempotencyKey string) (*mercadopago.PaymentResponse, error) {
	s.calls++
	return s.resp, s.err
}

type stubDonationMetrics struct{}

func (stubDonationMetrics) IncDonationApproved()          {}
func (stubDonationMetrics) IncDonationPending()           {}
func (stubDonationMetrics) IncDonationRejected()          {}
func (stubDonationMetrics) IncDonationFailed()            {}
func (stubDonationMetrics) ObserveDonationAmount(float64) {}

func newDonationRouter(charger service.CardCharger) *gin.Engine {
	log := newTestLogger()
	svc := service.NewDonationService(charger, stubDonationMetrics{}, log)
	handler := NewDonationHandler(svc, "TEST-public-key", log, newZapNop())

	r := gin.New()
	r.POST("/api/v1/donations", newAuthMiddleware().RequireAuth(), handler.Donate)
	return r
}

func postDonation(t *testing.T, r *gin.Engine, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	jsonData, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/donations", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func validDonationBody() map[string]any {
	return map[string]any{
		"token":             "card-token",
		"transactionAmount": 50.0,
		"installments":      1,
		"paymentMethodId":   "visa",
		"payer": map[string]any{
			"email": "maria@example.com",
			"identification": map[string]any{
				"type":   "CPF",
				"number": "12345678900",
			},
		},
	}
}

func TestDonate_Unauthorized(t *testing.T) {
	charger := &stubCharger{}
	r := newDonationRouter(charger)

	resp := postDonation(t, r, "", validDonationBody())

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, 0, charger.calls)
}

func TestDonate_PublicKey(t *testing.T) {
	charger := &stubCharger{}
	r := newDonationRouter(charger)
	token := signTestToken(t, "user-1", "Maria", "")

	resp := postDonation(t, r, token, map[string]any{"action": "get-public-key"})

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "TEST-public-key", respBody["publicKey"])
	assert.Equal(t, 0, charger.calls, "the public key path must not reach the provider")
}

func TestDonate_MissingToken(t *testing.T) {
	charger := &stubCharger{}
	r := newDonationRouter(charger)
	token := signTestToken(t, "user-1", "Maria", "")

	body := validDonationBody()
	delete(body, "token")

	resp := postDonation(t, r, token, body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, 0, charger.calls)

	var respBody map[string]any
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Dados de pagamento inválidos", respBody["error"])
}

func TestDonate_Approved(t *testing.T) {
	charger := &stubCharger{resp: &mercadopago.PaymentResponse{
		ID:                123456789,
		Status:            "approved",
		StatusDetail:      "accredited",
		TransactionAmount: 50,
		Installments:      1,
	}}
	r := newDonationRouter(charger)
	token := signTestToken(t, "user-1", "Maria", "")

	resp := postDonation(t, r, token, validDonationBody())

	assert.Equal(t, http.StatusOK, resp.Code)

	var result domain.DonationResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, int64(123456789), result.ID)
	assert.Equal(t, "approved", result.Status)
	assert.Equal(t, "accredited", result.StatusDetail)
}

func TestDonate_Rejected(t *testing.T) {
	charger := &stubCharger{resp: &mercadopago.PaymentResponse{
		ID:           42,
		Status:       "rejected",
		StatusDetail: "cc_rejected_high_risk",
	}}
	r := newDonationRouter(charger)
	token := signTestToken(t, "user-1", "Maria", "")

	resp := postDonation(t, r, token, validDonationBody())

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]any
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Pagamento recusado", respBody["error"])

	details := respBody["details"].(map[string]any)
	assert.Equal(t, "rejected", details["status"])
	assert.Equal(t, "cc_rejected_high_risk", details["statusDetail"])
}

func TestDonate_ProviderErrorPassesThrough(t *testing.T) {
	providerBody := `{"message":"Invalid card token","error":"bad_request","status":400}`
	charger := &stubCharger{err: domain.NewExternalServiceError("mercadopago", http.StatusBadRequest, providerBody, nil)}
	r := newDonationRouter(charger)
	token := signTestToken(t, "user-1", "Maria", "")

	resp := postDonation(t, r, token, validDonationBody())

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, providerBody, resp.Body.String(), "the provider body is relayed untouched")
}
