package router

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/polygame/internal/logging"
	"github.com/dmitrijs2005/polygame/internal/metrics"
)

// Location is where a navigation ended.
type Location struct {
	Path       string
	Route      Route
	Params     map[string]string
	Matched    bool
	Redirected bool
}

// Param returns the named path parameter of the matched route.
func (l Location) Param(name string) string {
	return l.Params[name]
}

// Router tracks the current view path and sends every navigation through
// the guard.
type Router struct {
	guard *Guard
	log   logging.Logger

	mu      sync.Mutex
	current string
}

func New(guard *Guard, log logging.Logger) *Router {
	return &Router{guard: guard, log: log.With("component", "router"), current: HomePath}
}

// Push navigates to path. A redirect re-enters the guard with the redirect
// target as the new destination. NewGuard guarantees redirect targets are
// never redirected again except /login -> / after a concurrent sign-in, so
// the chain ends after at most two hops.
func (r *Router) Push(ctx context.Context, path string) Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	to := Clean(path)
	redirected := false
	for {
		d := r.guard.Check(r.current, to)
		if d.Allowed() {
			metrics.Navigations.WithLabelValues("allowed").Inc()
			r.log.Debug(ctx, "navigate", "from", r.current, "to", to)
			r.current = to

			loc := Location{Path: to, Params: d.Params, Redirected: redirected}
			if d.Route != nil {
				loc.Route, loc.Matched = *d.Route, true
			}
			return loc
		}

		metrics.Navigations.WithLabelValues("redirected").Inc()
		r.log.Debug(ctx, "redirect", "from", to, "to", d.Redirect)
		to, redirected = d.Redirect, true
	}
}

// Current returns the path of the current view.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) Guard() *Guard { return r.guard }
