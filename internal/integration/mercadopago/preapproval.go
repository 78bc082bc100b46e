package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
)

// ErrPreapprovalNotFound the provider has no record of the recurring
// agreement. Callers treat this as an idempotent success: there is nothing
// left to cancel remotely.
var ErrPreapprovalNotFound = errors.New("preapproval not found at provider")

type preapprovalUpdate struct {
	Status string `json:"status"`
}

// CancelPreapproval cancels a recurring agreement at the provider.
func (c *Client) CancelPreapproval(ctx context.Context, preapprovalID string) error {
	c.log.Debug("Cancelling preapproval %s", preapprovalID)

	body, err := json.Marshal(preapprovalUpdate{Status: "cancelled"})
	if err != nil {
		return fmt.Errorf("failed to marshal preapproval update: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPut,
		c.baseURL+"/preapproval/"+preapprovalID,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warn("Preapproval %s not found at provider, treating as already cancelled", preapprovalID)
		return ErrPreapprovalNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Error("Preapproval cancellation returned status %d: %s", resp.StatusCode, string(raw))
		return domain.NewExternalServiceError("mercadopago", resp.StatusCode, string(raw), nil)
	}

	c.log.Info("Preapproval %s cancelled at provider", preapprovalID)
	return nil
}
