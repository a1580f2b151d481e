// Package client contains the transport layer between the polygame client
// stores and the backend API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): a single Do
//     call taking a Request (method, path, query or body) and decoding the
//     JSON response.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that injects
//     the session's bearer token, tags requests with an X-Request-ID, applies
//     a per-request timeout and records Prometheus metrics.
//
// # Error Handling
//
// Every failure is decoded once, at this boundary, into *APIError. Its
// optional Message carries the server's {"error": "..."} text; callers read
// it with ServerMessage or MessageOr instead of inspecting response bodies.
// Common conditions are exposed as sentinels matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrBadResponse.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All calls accept context.Context
// and honor cancellation.
package client
