package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polygame/internal/client/models"
	"github.com/dmitrijs2005/polygame/internal/client/router"
	"github.com/shopspring/decimal"
)

const portfolioPath = "/portfolio"

// Orders opens the portfolio view and lists the user's orders.
func (a *App) Orders(ctx context.Context) error {
	if _, ok := a.navigate(ctx, portfolioPath); !ok {
		return errSignInRequired
	}
	if _, err := a.trading.FetchOrders(ctx, nil); err != nil {
		return a.reportError(err)
	}
	printOrders(a.out, a.trading.Orders())
	return nil
}

// Positions opens the portfolio view and lists the user's positions.
func (a *App) Positions(ctx context.Context) error {
	if _, ok := a.navigate(ctx, portfolioPath); !ok {
		return errSignInRequired
	}
	if _, err := a.trading.FetchPositions(ctx); err != nil {
		return a.reportError(err)
	}
	printPositions(a.out, a.trading.Positions())
	return nil
}

func (a *App) showPortfolio(ctx context.Context) error {
	if _, err := a.trading.FetchPositions(ctx); err != nil {
		return a.reportError(err)
	}
	if _, err := a.trading.FetchOrders(ctx, nil); err != nil {
		return a.reportError(err)
	}
	printPositions(a.out, a.trading.Positions())
	printOrders(a.out, a.trading.Orders())
	return nil
}

// Trade places a buy or sell order from the market detail view:
//
//	buy <market> <outcome> <shares> <price>
//
// The order list is not refreshed; use 'orders' to see the new order.
func (a *App) Trade(ctx context.Context, side models.OrderType, args []string) error {
	if len(args) != 4 {
		fmt.Fprintf(a.out, "Usage: %s <market> <outcome> <shares> <price>\n", side)
		return errUsage
	}
	shares, err := decimal.NewFromString(args[2])
	if err != nil {
		fmt.Fprintln(a.out, "Invalid shares:", args[2])
		return errUsage
	}
	price, err := decimal.NewFromString(args[3])
	if err != nil {
		fmt.Fprintln(a.out, "Invalid price:", args[3])
		return errUsage
	}

	if _, ok := a.navigate(ctx, router.MarketPath(args[0])); !ok {
		return errSignInRequired
	}

	res := a.trading.PlaceOrder(ctx, models.OrderSpec{
		MarketID:  models.ID(args[0]),
		OutcomeID: models.ID(args[1]),
		OrderType: side,
		Shares:    shares,
		Price:     price,
	})
	if !res.Success {
		fmt.Fprintln(a.out, "Error:", res.Error)
		return fmt.Errorf("place order: %s", res.Error)
	}

	if o := res.Order; o != nil {
		fmt.Fprintf(a.out, "Order %s placed: %s %s @ %s (%s)\n", o.ID, o.OrderType, o.Shares, o.Price, o.Status)
	} else {
		fmt.Fprintln(a.out, "Order placed")
	}
	return nil
}

// Cancel cancels an order from the portfolio view. The cached order list
// keeps the order until the next 'orders'.
func (a *App) Cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: cancel <order>")
		return errUsage
	}
	if _, ok := a.navigate(ctx, portfolioPath); !ok {
		return errSignInRequired
	}

	res := a.trading.CancelOrder(ctx, models.ID(args[0]))
	if !res.Success {
		fmt.Fprintln(a.out, "Error:", res.Error)
		return fmt.Errorf("cancel order: %s", res.Error)
	}
	fmt.Fprintf(a.out, "Order %s cancelled\n", args[0])
	return nil
}
