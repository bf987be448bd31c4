package replay

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joripage/matching-engine/pkg/logging"
	"github.com/joripage/matching-engine/pkg/metrics"
	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/joripage/matching-engine/pkg/publisher"
	"github.com/joripage/matching-engine/pkg/script"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	events []publisher.TradeEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, events []publisher.TradeEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *recorder) Close(context.Context) error { return nil }

const orders = `
orders:
  - {id: 1, side: SELL, price: "101", quantity: 100}
  - {id: 2, side: BUY, price: "99", quantity: 50}
  - {id: 3, side: BUY, price: "0", quantity: 10}
  - {id: 4, side: BUY, price: "102", quantity: 60}
  - snapshot: true
`

func TestRun(t *testing.T) {
	s, err := script.Parse([]byte(orders))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	rec := &recorder{}
	reg := prometheus.NewRegistry()
	r := &Replayer{
		Book:      orderbook.NewOrderBook("DEMO"),
		Out:       &out,
		Publisher: rec,
		Metrics:   metrics.NewCollector(reg),
		Logger:    logging.FromZap(zap.New(core)),
	}

	sum, err := r.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, Summary{Submitted: 3, Rejected: 1, Trades: 1, TradedQty: 60}, sum)

	require.Len(t, rec.events, 1)
	assert.Equal(t, int64(4), rec.events[0].BuyOrderID)
	assert.Equal(t, "DEMO", rec.events[0].Symbol)

	assert.Contains(t, out.String(), "[TRADE] Buy #4 matched with Sell #1 -> 60 shares @ $101")
	assert.Contains(t, out.String(), "  $101 : 40\n")
	assert.False(t, strings.Contains(out.String(), "#3"), "rejected orders are not printed")

	rejected := logs.FilterMessage("order rejected").All()
	require.Len(t, rejected, 1)
	assert.EqualValues(t, 3, rejected[0].ContextMap()["order_id"])

	assert.Equal(t, float64(1), testutil.ToFloat64(r.Metrics.OrdersTotal.WithLabelValues("DEMO", "BUY", "invalid_price")))
	assert.Equal(t, float64(40), testutil.ToFloat64(r.Metrics.BookQuantity.WithLabelValues("DEMO", "SELL")))
}

func TestRunStopsOnPublishError(t *testing.T) {
	s, err := script.Parse([]byte(orders))
	require.NoError(t, err)

	boom := errors.New("sink down")
	r := &Replayer{
		Book:      orderbook.NewOrderBook("DEMO"),
		Out:       &bytes.Buffer{},
		Publisher: &recorder{err: boom},
		Logger:    logging.FromZap(zap.NewNop()),
	}
	_, err = r.Run(context.Background(), s)
	assert.ErrorIs(t, err, boom)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Replayer{
		Book:   orderbook.NewOrderBook("DEMO"),
		Out:    &bytes.Buffer{},
		Logger: logging.FromZap(zap.NewNop()),
	}
	sum, err := r.Run(ctx, script.Demo())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Submitted)
}
