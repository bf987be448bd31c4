package orderbook

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchResult is one execution between an incoming order and a resting order.
// Price is always the resting order's price.
type MatchResult struct {
	TradeID     uint64
	BuyOrderID  int64
	SellOrderID int64
	TakerSide   Side
	Price       decimal.Decimal
	Qty         int64
	Time        time.Time
}

// TotalQty sums the executed quantity of results.
func TotalQty(results []MatchResult) int64 {
	var total int64
	for _, r := range results {
		total += r.Qty
	}
	return total
}
