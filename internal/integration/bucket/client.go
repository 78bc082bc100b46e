package bucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/domain"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
)

const (
	region  = "auto"
	service = "s3"
)

// Config configuration for the S3-compatible object store
type Config struct {
	// Endpoint is the store's base URL, e.g. https://<account>.r2.cloudflarestorage.com
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL is where uploaded objects are served from
	PublicBaseURL string
}

// Client uploads objects with hand-signed SigV4 PUTs; no SDK involved.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
	now        func() time.Time
}

// NewClient creates a new object-store client
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
		now:        time.Now,
	}
}

// Put uploads payload under key and returns the object's public URL. The
// store's answer is the only confirmation; nothing is retried.
func (c *Client) Put(ctx context.Context, key, contentType string, payload []byte) (string, error) {
	base := strings.TrimSuffix(c.cfg.Endpoint, "/")
	endpoint, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}

	path := "/" + c.cfg.Bucket + "/" + key
	payloadHash := hashSHA256(payload)
	now := c.now()
	amzDate := now.UTC().Format(amzDateFormat)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPut,
		base+path,
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	authorization := signPut(
		c.cfg.AccessKeyID, c.cfg.SecretAccessKey,
		region, service,
		path, endpoint.Host, contentType, payloadHash, now,
	)

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("Authorization", authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Error("Object store returned status %d: %s", resp.StatusCode, string(raw))
		return "", domain.NewExternalServiceError("storage", resp.StatusCode, string(raw), nil)
	}

	publicURL := strings.TrimSuffix(c.cfg.PublicBaseURL, "/") + "/" + key
	c.log.Info("Uploaded object %s", key)
	return publicURL, nil
}
