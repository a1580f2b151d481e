package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

var ErrInvalidRoutes = errors.New("invalid route table")

// AuthState is the view of the session the guard consults.
type AuthState interface {
	IsAuthenticated() bool
}

// Decision is the guard's verdict on one transition. Route and Params
// describe the target when it matched a route. Redirect is empty when the
// transition is allowed.
type Decision struct {
	Route    *Route
	Params   map[string]string
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard decides route transitions from in-memory session state only. It
// never blocks and never calls the network.
type Guard struct {
	routes []Route
	mux    *chi.Mux
	index  map[string]int
	auth   AuthState
}

// NewGuard builds a guard over routes. The table is rejected when a redirect
// target could itself be redirected: the login route must not be protected
// and the home route must be neither protected nor auth-only.
func NewGuard(routes []Route, auth AuthState) (*Guard, error) {
	g := &Guard{
		routes: append([]Route(nil), routes...),
		mux:    chi.NewRouter(),
		index:  make(map[string]int, len(routes)),
		auth:   auth,
	}

	noop := func(http.ResponseWriter, *http.Request) {}
	for i, r := range g.routes {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("%w: pattern %q of %s must start with /", ErrInvalidRoutes, r.Pattern, r.Name)
		}
		if _, dup := g.index[r.Pattern]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern %q", ErrInvalidRoutes, r.Pattern)
		}
		if r.Protected && r.AuthOnly {
			return nil, fmt.Errorf("%w: %s is both protected and auth-only", ErrInvalidRoutes, r.Name)
		}
		g.index[r.Pattern] = i
		g.mux.Get(r.Pattern, noop)
	}

	if r, _, ok := g.match(LoginPath); ok && r.Protected {
		return nil, fmt.Errorf("%w: %s must not be protected", ErrInvalidRoutes, LoginPath)
	}
	if r, _, ok := g.match(HomePath); ok && (r.Protected || r.AuthOnly) {
		return nil, fmt.Errorf("%w: %s must be neither protected nor auth-only", ErrInvalidRoutes, HomePath)
	}
	return g, nil
}

// Match returns the route serving path. Query strings, fragments and a
// trailing slash are ignored.
func (g *Guard) Match(path string) (Route, bool) {
	r, _, ok := g.match(path)
	return r, ok
}

func (g *Guard) match(path string) (Route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	if !g.mux.Match(rctx, http.MethodGet, Clean(path)) {
		return Route{}, nil, false
	}
	i, ok := g.index[rctx.RoutePattern()]
	if !ok {
		return Route{}, nil, false
	}

	var params map[string]string
	for k, key := range rctx.URLParams.Keys {
		if params == nil {
			params = make(map[string]string, len(rctx.URLParams.Keys))
		}
		// Params come back as they appear in the path; MarketPath escapes them.
		v := rctx.URLParams.Values[k]
		if raw, err := url.PathUnescape(v); err == nil {
			v = raw
		}
		params[key] = v
	}
	return g.routes[i], params, true
}

// Check evaluates the transition from -> to:
//
//  1. a protected target while signed out redirects to LoginPath;
//  2. an auth-only target while signed in redirects to HomePath;
//  3. anything else, including unknown paths, is allowed.
func (g *Guard) Check(from, to string) Decision {
	r, params, ok := g.match(to)
	if !ok {
		return Decision{}
	}

	d := Decision{Route: &r, Params: params}
	authed := g.auth.IsAuthenticated()
	switch {
	case r.Protected && !authed:
		d.Redirect = LoginPath
	case r.AuthOnly && authed:
		d.Redirect = HomePath
	}
	return d
}

// Clean normalizes a navigation target to a bare absolute path.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
