package mercadopago

import (
	"net/http"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
)

const defaultBaseURL = "https://api.mercadopago.com"

// Client talks to the Mercado Pago REST API
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *logger.Logger
}

// Config configuration for the Mercado Pago client
type Config struct {
	AccessToken string
	// BaseURL overrides the API endpoint, used by tests
	BaseURL string
}

// NewClient creates a new Mercado Pago client
func NewClient(cfg Config, log *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log,
	}
}

// BaseURL returns the API endpoint in use
func (c *Client) BaseURL() string {
	return c.baseURL
}
