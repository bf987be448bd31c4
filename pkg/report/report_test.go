package report

import (
	"bytes"
	"testing"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSessionOutput(t *testing.T) {
	var out bytes.Buffer
	ob := orderbook.NewOrderBook("DEMO")

	submit := func(id int64, side orderbook.Side, price string, qty int64) {
		o := orderbook.Order{ID: id, Side: side, Price: decimal.RequireFromString(price), Qty: qty}
		results, err := ob.Submit(o.ID, o.Side, o.Price, o.Qty)
		require.NoError(t, err)
		PrintSubmission(&out, o, results)
	}

	submit(1, orderbook.SELL, "101", 100)
	submit(2, orderbook.BUY, "99", 50)
	PrintBook(&out, ob.Snapshot())
	submit(3, orderbook.BUY, "102", 60)
	PrintBook(&out, ob.Snapshot())

	want := `[PENDING] Sell #1 added to book: 100 @ $101
[PENDING] Buy #2 added to book: 50 @ $99

------- ORDER BOOK -------
ASKS (Sellers)
  $101 : 100
--------------------------
BIDS (Buyers)
  $99 : 50
--------------------------

[TRADE] Buy #3 matched with Sell #1 -> 60 shares @ $101

------- ORDER BOOK -------
ASKS (Sellers)
  $101 : 40
--------------------------
BIDS (Buyers)
  $99 : 50
--------------------------

`
	assert.Equal(t, want, out.String())
}

func TestPrintSubmissionPartialRest(t *testing.T) {
	var out bytes.Buffer
	o := orderbook.Order{ID: 7, Side: orderbook.SELL, Price: decimal.RequireFromString("10.5"), Qty: 10}
	PrintSubmission(&out, o, []orderbook.MatchResult{
		{BuyOrderID: 3, SellOrderID: 7, Price: decimal.RequireFromString("11"), Qty: 4},
	})
	assert.Equal(t, "[TRADE] Buy #3 matched with Sell #7 -> 4 shares @ $11\n"+
		"[PENDING] Sell #7 added to book: 6 @ $10.5\n", out.String())
}
