package client

import (
	"context"
	"net/url"
)

// Request describes one backend call. Query is sent as URL parameters
// verbatim; Body, when non-nil, is encoded as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client is the transport contract the stores depend on. On success the
// decoded response body is stored in out (which may be nil to discard it).
// Failures are returned as *APIError.
type Client interface {
	Do(ctx context.Context, req Request, out any) error
}

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
