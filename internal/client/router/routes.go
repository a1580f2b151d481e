// Package router maps client view paths to routes and guards navigation
// between them according to the session state.
package router

import "net/url"

// Well-known paths used as redirect targets.
const (
	HomePath     = "/"
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// Route names of DefaultRoutes.
const (
	RouteHome         = "Home"
	RouteLogin        = "Login"
	RouteRegister     = "Register"
	RouteMarkets      = "Markets"
	RouteMarketDetail = "MarketDetail"
	RoutePortfolio    = "Portfolio"
	RouteProfile      = "Profile"
)

// Route is one navigable view. Pattern uses chi syntax ("/markets/{id}").
//
// Protected routes require an authenticated session. AuthOnly routes (login
// and registration forms) are only meaningful while signed out.
type Route struct {
	Name      string
	Pattern   string
	Protected bool
	AuthOnly  bool
}

// DefaultRoutes returns the client's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteHome, Pattern: HomePath},
		{Name: RouteLogin, Pattern: LoginPath, AuthOnly: true},
		{Name: RouteRegister, Pattern: RegisterPath, AuthOnly: true},
		{Name: RouteMarkets, Pattern: "/markets", Protected: true},
		{Name: RouteMarketDetail, Pattern: "/markets/{id}", Protected: true},
		{Name: RoutePortfolio, Pattern: "/portfolio", Protected: true},
		{Name: RouteProfile, Pattern: "/profile", Protected: true},
	}
}

// MarketPath builds the detail path of a market.
func MarketPath(id string) string {
	return "/markets/" + url.PathEscape(id)
}
