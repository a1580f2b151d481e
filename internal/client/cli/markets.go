package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/polygame/internal/client/client"
	"github.com/dmitrijs2005/polygame/internal/client/models"
	"github.com/dmitrijs2005/polygame/internal/client/router"
)

var errUsage = errors.New("usage")

// reportError prints a failed propagating operation.
func (a *App) reportError(err error) error {
	fmt.Fprintln(a.out, "Error:", client.MessageOr(err, err.Error()))
	return err
}

// Markets opens the market list, optionally filtered by category.
func (a *App) Markets(ctx context.Context, args []string) error {
	if _, ok := a.navigate(ctx, "/markets"); !ok {
		return errSignInRequired
	}

	var params url.Values
	if len(args) > 0 {
		params = url.Values{"category": {args[0]}}
	}
	return a.showMarkets(ctx, params)
}

func (a *App) showMarkets(ctx context.Context, params url.Values) error {
	resp, err := a.markets.FetchMarkets(ctx, params)
	if err != nil {
		return a.reportError(err)
	}
	printMarkets(a.out, a.markets.Markets())
	fmt.Fprintf(a.out, "page %d, %d markets total\n", resp.Page, resp.Total)
	return nil
}

// Market opens the detail view of one market.
func (a *App) Market(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: market <id>")
		return errUsage
	}
	loc, ok := a.navigate(ctx, router.MarketPath(args[0]))
	if !ok {
		return errSignInRequired
	}
	return a.showMarket(ctx, loc.Param("id"))
}

func (a *App) showMarket(ctx context.Context, id string) error {
	if _, err := a.markets.FetchMarket(ctx, models.ID(id)); err != nil {
		return a.reportError(err)
	}
	if m := a.markets.CurrentMarket(); m != nil {
		printMarket(a.out, m)
	}
	return nil
}

// Trending lists the trending markets. The optional argument is the number
// of markets to show.
func (a *App) Trending(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: trending [n]")
			return errUsage
		}
		limit = n
	}
	if _, ok := a.navigate(ctx, "/markets"); !ok {
		return errSignInRequired
	}
	return a.showTrending(ctx, limit)
}

func (a *App) showTrending(ctx context.Context, limit int) error {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Welcome to polygame. Sign in to trade on prediction markets.")
		return nil
	}
	ms, err := a.markets.FetchTrendingMarkets(ctx, limit)
	if err != nil {
		return a.reportError(err)
	}
	fmt.Fprintln(a.out, "Trending markets:")
	printMarkets(a.out, ms)
	return nil
}

// Search lists markets matching the keyword.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: search <keyword>")
		return errUsage
	}
	if _, ok := a.navigate(ctx, "/markets"); !ok {
		return errSignInRequired
	}

	resp, err := a.markets.SearchMarkets(ctx, strings.Join(args, " "), nil)
	if err != nil {
		return a.reportError(err)
	}
	printMarkets(a.out, a.markets.Markets())
	fmt.Fprintf(a.out, "%d matches\n", resp.Total)
	return nil
}
