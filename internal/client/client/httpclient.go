package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/polygame/internal/metrics"
	"github.com/google/uuid"
)

const (
	RequestIDHeaderName     = "X-Request-ID"
	AuthorizationHeaderName = "Authorization"

	maxErrorBodySize = 64 << 10
)

// HTTPClient talks JSON to the backend REST API rooted at baseURL
// (e.g. http://127.0.0.1:8080/api/v1).
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration

	mu     sync.RWMutex
	tokens TokenSource
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

// WithTokenSource sets the bearer token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) { h.tokens = ts }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource swaps the bearer token provider. The session store is
// usually built after the client, so it is attached here.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *HTTPClient) Do(ctx context.Context, req Request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return &APIError{Err: err}
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.ObserveAPIRequest(req.Method, req.Path, 0, started)
		return c.mapTransportError(ctx, err)
	}
	defer resp.Body.Close()
	metrics.ObserveAPIRequest(req.Method, req.Path, resp.StatusCode, started)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(RequestIDHeaderName, uuid.NewString())
	if tok := c.token(); tok != "" {
		httpReq.Header.Set(AuthorizationHeaderName, "Bearer "+tok)
	}
	return httpReq, nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, err error) error {
	// Caller cancellation is not an availability problem.
	if errors.Is(ctx.Err(), context.Canceled) {
		return &APIError{Err: ctx.Err()}
	}
	return &APIError{Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
}

type errorBody struct {
	Error string `json:"error"`
}

func decodeErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Err: statusError(resp.StatusCode)}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(b) == 0 {
		return apiErr
	}

	var eb errorBody
	if json.Unmarshal(b, &eb) == nil {
		apiErr.Message = eb.Error
	}
	return apiErr
}
