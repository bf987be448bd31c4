// Package report renders trades and order book snapshots for the console.
package report

import (
	"fmt"
	"io"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

const rule = "--------------------------"

// PrintTrades writes one line per execution.
func PrintTrades(w io.Writer, results []orderbook.MatchResult) {
	for _, r := range results {
		fmt.Fprintf(w, "[TRADE] Buy #%d matched with Sell #%d -> %d shares @ $%s\n",
			r.BuyOrderID, r.SellOrderID, r.Qty, r.Price)
	}
}

// PrintSubmission writes the trades of one submission followed by a pending line when
// part of the order rested.
func PrintSubmission(w io.Writer, order orderbook.Order, results []orderbook.MatchResult) {
	PrintTrades(w, results)
	remaining := order.Qty - orderbook.TotalQty(results)
	if remaining > 0 {
		fmt.Fprintf(w, "[PENDING] %s #%d added to book: %d @ $%s\n",
			sideLabel(order.Side), order.ID, remaining, order.Price)
	}
}

func sideLabel(side orderbook.Side) string {
	if side == orderbook.SELL {
		return "Sell"
	}
	return "Buy"
}

// PrintBook writes asks worst to best above bids best to worst.
func PrintBook(w io.Writer, snap orderbook.BookSnapshot) {
	fmt.Fprint(w, "\n------- ORDER BOOK -------\n")
	fmt.Fprint(w, "ASKS (Sellers)\n")
	for _, l := range snap.Asks {
		fmt.Fprintf(w, "  $%s : %d\n", l.Price, l.Quantity)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, "BIDS (Buyers)\n")
	for _, l := range snap.Bids {
		fmt.Fprintf(w, "  $%s : %d\n", l.Price, l.Quantity)
	}
	fmt.Fprint(w, rule+"\n\n")
}
