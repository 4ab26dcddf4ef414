// Package webex is a minimal client for the Webex REST API.
package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/combot/combot/internal/metrics"
)

const (
	// ClientTimeout is the default total request timeout.
	ClientTimeout = 30 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 15 * time.Second

	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "Combot/1.0"

	// maxErrorBody bounds how much of a failed response is read.
	maxErrorBody = 4 << 10
)

// HeaderTrackingID is the correlation header understood by Webex support.
const HeaderTrackingID = "TrackingID"

// Config configures a Client. Token is sent as a bearer credential on every call.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string
}

// Client performs authenticated, synchronous calls against the API.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewHTTPClient creates an HTTP client configured for API calls.
// It has appropriate timeouts and does not follow redirects.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = ClientTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			IdleConnTimeout:       90 * time.Second,
		},
		// Don't follow redirects, the bearer token must not leak to another host
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// New creates a Client. It fails if the token or base URL is missing.
func New(cfg Config, logger *slog.Logger, recorder metrics.Recorder) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidArgument)
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Client{
		cfg:     cfg,
		http:    NewHTTPClient(cfg.Timeout),
		logger:  logger.With("component", "webex.client"),
		metrics: recorder,
	}, nil
}

// SetAPIHeaders applies authorization and content headers to an API request.
func SetAPIHeaders(req *http.Request, token, trackingID, userAgent string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderTrackingID, trackingID)
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// do sends one request to resource and decodes a 2xx JSON body into out.
// A nil out discards the body.
func (c *Client) do(ctx context.Context, method, resource string, query url.Values, in, out any) error {
	endpoint := c.cfg.BaseURL + "/" + resource
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", resource, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	trackingID := uuid.NewString()
	SetAPIHeaders(req, c.cfg.Token, trackingID, c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.metrics.ObserveAPIRequest(resource, 0, duration)
		return fmt.Errorf("%s %s: %w", method, resource, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveAPIRequest(resource, resp.StatusCode, duration)
	c.logger.Debug("webex request",
		"method", method,
		"resource", resource,
		"http_status", resp.StatusCode,
		"tracking_id", trackingID,
		"duration_ms", duration.Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, method, resource, trackingID)
	}

	if out == nil {
		// Drain body to allow connection reuse
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
