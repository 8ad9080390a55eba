// Package gateway is the HTTP client for the backend REST API. It owns the
// wire contract only; session and timer state live with their services.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/dto"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

const (
	headerRequestID      = "X-Request-ID"
	headerIdempotencyKey = "X-Idempotency-Key"
)

// TokenSource supplies the current bearer token, if any
type TokenSource interface {
	Token() (string, bool)
}

// Config holds gateway settings
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api
	BaseURL string
	// Timeout bounds a whole request. Zero means no timeout; in-flight calls
	// then block until the server answers or the connection drops.
	Timeout time.Duration
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}

// ErrorDetail extracts the backend-provided message from err, or falls back
// to the given default. Used to build user-facing failure results.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

// Client talks to the backend API
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logger.Logger
}

// New creates a gateway client
func New(cfg Config, tokens TokenSource, log *logger.Logger) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// callOpts controls per-request behavior
type callOpts struct {
	// authed attaches the bearer token and maps 401 to ErrSessionExpired
	authed bool
	// idempotencyKey is attached to mutating calls so a resend after a
	// dropped response cannot create a duplicate record server-side
	idempotencyKey string
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts callOpts) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.New().String())
	if opts.idempotencyKey != "" {
		req.Header.Set(headerIdempotencyKey, opts.idempotencyKey)
	}
	if opts.authed {
		token, ok := c.tokens.Token()
		if !ok {
			return domain.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized && opts.authed {
		return domain.ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readDetail pulls the {"detail": "..."} message out of an error body
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	var payload dto.ErrorResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
