package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/polygame/internal/client/router"
)

var errSignInRequired = errors.New("sign in required")

// navigate moves to path through the guard. It reports false when the guard
// redirected the navigation elsewhere.
func (a *App) navigate(ctx context.Context, path string) (router.Location, bool) {
	loc := a.router.Push(ctx, path)
	if !loc.Redirected {
		return loc, true
	}
	if loc.Path == router.LoginPath {
		fmt.Fprintln(a.out, "Please log in first (use 'login' or 'register').")
	}
	return loc, false
}

// Goto navigates to an arbitrary path and renders the view it lands on,
// including the view a redirect leads to.
func (a *App) Goto(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: goto <path>")
		return errUsage
	}

	loc := a.router.Push(ctx, args[0])
	if loc.Redirected {
		fmt.Fprintf(a.out, "Redirected to %s\n", loc.Path)
	}
	if !loc.Matched {
		fmt.Fprintf(a.out, "Nothing to show at %s\n", loc.Path)
		return nil
	}

	switch loc.Route.Name {
	case router.RouteHome:
		return a.showTrending(ctx, 0)
	case router.RouteLogin:
		fmt.Fprintln(a.out, "Use 'login' to sign in.")
	case router.RouteRegister:
		fmt.Fprintln(a.out, "Use 'register' to create an account.")
	case router.RouteMarkets:
		return a.showMarkets(ctx, nil)
	case router.RouteMarketDetail:
		return a.showMarket(ctx, loc.Param("id"))
	case router.RoutePortfolio:
		return a.showPortfolio(ctx)
	case router.RouteProfile:
		a.session.FetchProfile(ctx)
		if u := a.session.User(); u != nil {
			printProfile(a.out, u)
		}
	}
	return nil
}
