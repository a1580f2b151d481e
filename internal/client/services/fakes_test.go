package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/polygame/internal/client/client"
)

// ---- fake API ----

type handlerFunc func(req client.Request) (body string, err error)

// fakeAPI implements client.Client. Replies are keyed by "METHOD /path";
// unknown routes answer 404. Every call is recorded.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]handlerFunc
	calls  []client.Request
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: map[string]handlerFunc{}}
}

func (f *fakeAPI) handle(method, path string, h handlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeAPI) reply(method, path, body string) {
	f.handle(method, path, func(client.Request) (string, error) { return body, nil })
}

func (f *fakeAPI) fail(method, path string, err error) {
	f.handle(method, path, func(client.Request) (string, error) { return "", err })
}

func (f *fakeAPI) last() client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return client.Request{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) Do(ctx context.Context, req client.Request, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	h, ok := f.routes[req.Method+" "+req.Path]
	f.mu.Unlock()

	if !ok {
		return &client.APIError{StatusCode: http.StatusNotFound, Err: client.ErrNotFound}
	}
	body, err := h(req)
	if err != nil {
		return err
	}
	if out == nil || body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

// serverError builds the error HTTPClient returns for a JSON error body.
func serverError(status int, msg string) error {
	return &client.APIError{StatusCode: status, Message: msg, Err: fmt.Errorf("status %d", status)}
}

// unavailable builds the error HTTPClient returns when the server is down.
func unavailable() error {
	return &client.APIError{Err: client.ErrUnavailable}
}

// ---- in-memory metadata repository ----

type memRepo struct {
	mu   sync.Mutex
	data map[string][]byte

	getErr    error
	setErr    error
	deleteErr error

	// afterSetAll runs once a SetAll has been applied, outside the lock.
	afterSetAll func()
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]byte{}}
}

func (r *memRepo) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.data[key], nil
}

func (r *memRepo) Set(ctx context.Context, key string, value []byte) error {
	return r.SetAll(ctx, map[string][]byte{key: value})
}

func (r *memRepo) SetAll(ctx context.Context, values map[string][]byte) error {
	r.mu.Lock()
	if r.setErr != nil {
		r.mu.Unlock()
		return r.setErr
	}
	for k, v := range values {
		r.data[k] = append([]byte(nil), v...)
	}
	hook := r.afterSetAll
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (r *memRepo) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for _, k := range keys {
		delete(r.data, k)
	}
	return nil
}

func (r *memRepo) List(ctx context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = v
	}
	return out, nil
}

func (r *memRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = map[string][]byte{}
	return nil
}

func (r *memRepo) value(key string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok
}
