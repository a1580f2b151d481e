package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/polygame/internal/client/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printMarkets(w io.Writer, ms []models.Market) {
	if len(ms) == 0 {
		fmt.Fprintln(w, "No markets")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tVOLUME")
	for _, m := range ms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Title, m.Category, m.Status, m.TotalVolume.StringFixed(2))
	}
	_ = tw.Flush()
}

func printMarket(w io.Writer, m *models.Market) {
	fmt.Fprintf(w, "#%s %s [%s]\n", m.ID, m.Title, m.Status)
	if m.Description != "" {
		fmt.Fprintln(w, m.Description)
	}
	if m.EndTime != nil {
		fmt.Fprintf(w, "Ends: %s\n", m.EndTime.Format("2006-01-02 15:04"))
	}
	if len(m.Outcomes) == 0 {
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "OUTCOME\tNAME\tPRICE\tSHARES")
	for _, o := range m.Outcomes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.OutcomeName, o.CurrentPrice.StringFixed(4), o.TotalShares.String())
	}
	_ = tw.Flush()
}

func printOrders(w io.Writer, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ORDER\tMARKET\tOUTCOME\tSIDE\tSHARES\tPRICE\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.MarketID, o.OutcomeID, o.OrderType, o.Shares, o.Price, o.Status)
	}
	_ = tw.Flush()
}

func printPositions(w io.Writer, ps []models.Position) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "No positions")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "MARKET\tOUTCOME\tSHARES\tAVG PRICE\tCOST")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.MarketID, p.OutcomeID, p.Shares, p.AvgPrice, p.Cost().StringFixed(2))
	}
	_ = tw.Flush()
}

func printProfile(w io.Writer, u *models.UserProfile) {
	fmt.Fprintf(w, "Username: %s\n", u.Username)
	if u.Email != "" {
		fmt.Fprintf(w, "Email:    %s\n", u.Email)
	}
	fmt.Fprintf(w, "Balance:  %s\n", u.VirtualBalance.StringFixed(2))
	if u.IsAdmin {
		fmt.Fprintln(w, "Role:     admin")
	}
}
