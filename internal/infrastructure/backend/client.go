// Package backend is the gateway to the upstream POS REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/stockdesk/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// StatusSuccess is the only status value that signals success.
	StatusSuccess = "Success"
	// StatusUnauthorized additionally tears the session down.
	StatusUnauthorized = "Unauthorized"

	// TokenHeader carries the session token on every request.
	TokenHeader = "token"
	// BusinessHeader scopes the request to the active business.
	BusinessHeader = "business"
)

// Envelope is the uniform wrapper of every backend response.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Total   int64           `json:"total,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Config holds the gateway settings.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	LegacyVerbs bool
}

// UnauthorizedFunc is invoked with the rejected token when the backend reports
// an unauthorized session.
type UnauthorizedFunc func(ctx context.Context, token string)

// Client calls the backend. It is safe for concurrent use.
type Client struct {
	base           string
	http           *http.Client
	legacyVerbs    bool
	logger         *zap.Logger
	onUnauthorized UnauthorizedFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for upstream calls.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// OnUnauthorized registers the session teardown hook.
func OnUnauthorized(fn UnauthorizedFunc) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a backend client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("backend: invalid base url %q: %w", cfg.BaseURL, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		base:        strings.TrimRight(cfg.BaseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		legacyVerbs: cfg.LegacyVerbs,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request describes one call.
type Request struct {
	Endpoint Endpoint
	Params   []string
	Query    url.Values
	Body     any
}

// Do performs the request and returns the envelope of a successful response.
// Failures are returned as *apperror.AppError of kind network, api, not_found
// or unauthorized.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	method := req.Endpoint.Method
	if c.legacyVerbs && req.Endpoint.Legacy != "" {
		method = req.Endpoint.Legacy
	}

	target := c.base + "/" + req.Endpoint.Name
	for _, p := range req.Params {
		target += "/" + url.PathEscape(p)
	}
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("backend: encode %s body: %w", req.Endpoint.Name, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("backend: build %s request: %w", req.Endpoint.Name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	creds, _ := CredentialsFrom(ctx)
	if creds.Token != "" {
		httpReq.Header.Set(TokenHeader, creds.Token)
	}
	if creds.BusinessID != "" {
		httpReq.Header.Set(BusinessHeader, creds.BusinessID)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("backend unreachable",
			zap.String("endpoint", req.Endpoint.Name),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, apperror.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewNetworkError(err)
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("endpoint", req.Endpoint.Name),
		zap.Int("http_status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, c.rejected(ctx, req, creds.Token)
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, apperror.NewNotFoundError(req.Endpoint.Resource)
		}
		return nil, apperror.NewAPIError(fmt.Sprintf("Unexpected response from backend (HTTP %d)", resp.StatusCode))
	}

	switch {
	case env.Status == StatusSuccess:
		return &env, nil
	case env.Status == StatusUnauthorized || resp.StatusCode == http.StatusUnauthorized:
		return nil, c.rejected(ctx, req, creds.Token)
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperror.NewNotFoundError(req.Endpoint.Resource)
	default:
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		c.logger.Warn("backend reported failure",
			zap.String("endpoint", req.Endpoint.Name),
			zap.String("status", env.Status),
			zap.String("message", msg),
		)
		return nil, apperror.NewAPIError(msg)
	}
}

// rejected runs the unauthorized hook for token.
func (c *Client) rejected(ctx context.Context, req Request, token string) error {
	c.logger.Info("backend rejected session", zap.String("endpoint", req.Endpoint.Name))
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx, token)
	}
	return apperror.ErrUnauthorized
}

// List performs req and decodes the data array into items.
func List[T any](ctx context.Context, c *Client, req Request) ([]T, int64, error) {
	env, err := c.Do(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	var items []T
	if isEmpty(env.Data) {
		return []T{}, env.Total, nil
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, 0, apperror.NewAPIError(fmt.Sprintf("Malformed %s data", req.Endpoint.Resource))
	}
	total := env.Total
	if total == 0 {
		total = int64(len(items))
	}
	return items, total, nil
}

// One performs req and decodes a single record. Null or empty data is a not-found.
// Backends that return single-element arrays for detail calls are accepted.
func One[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	env, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	data := env.Data
	if isEmpty(data) {
		return nil, apperror.NewNotFoundError(req.Endpoint.Resource)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, apperror.NewAPIError(fmt.Sprintf("Malformed %s data", req.Endpoint.Resource))
		}
		if len(rows) == 0 {
			return nil, apperror.NewNotFoundError(req.Endpoint.Resource)
		}
		data = rows[0]
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperror.NewAPIError(fmt.Sprintf("Malformed %s data", req.Endpoint.Resource))
	}
	return &out, nil
}

// Exec performs a write whose response data is not needed.
func Exec(ctx context.Context, c *Client, req Request) error {
	_, err := c.Do(ctx, req)
	return err
}

func isEmpty(data json.RawMessage) bool {
	t := bytes.TrimSpace(data)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Credentials are the identifiers sent with every request.
type Credentials struct {
	Token      string
	BusinessID string
}

type credentialsKey struct{}

// WithCredentials attaches credentials to ctx.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, c)
}

// CredentialsFrom extracts credentials from ctx.
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	c, ok := ctx.Value(credentialsKey{}).(Credentials)
	return c, ok
}

// IsTimeout reports whether err is a client-side timeout.
func IsTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
