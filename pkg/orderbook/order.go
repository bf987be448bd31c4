package orderbook

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

func (s Side) valid() bool {
	return s == BUY || s == SELL
}

// Opposite returns the counter side.
func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

type Order struct {
	ID        int64
	Side      Side
	Price     decimal.Decimal
	Qty       int64     // remaining quantity
	Seq       uint64    // arrival sequence, FIFO tie-break within a level
	CreatedAt time.Time // informational only
}
