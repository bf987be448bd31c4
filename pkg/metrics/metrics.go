package metrics

import (
	"errors"
	"net/http"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks submissions, executions and book depth for order books.
type Collector struct {
	// OrdersTotal counts submissions by side and outcome.
	OrdersTotal *prometheus.CounterVec
	// TradesTotal counts executions.
	TradesTotal *prometheus.CounterVec
	// TradedQuantity sums executed quantity.
	TradedQuantity *prometheus.CounterVec
	// BookLevels tracks the number of price levels per side.
	BookLevels *prometheus.GaugeVec
	// BookQuantity tracks resting quantity per side.
	BookQuantity *prometheus.GaugeVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		OrdersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matching_orders_total",
				Help: "Total number of submitted orders by side and result",
			},
			[]string{"symbol", "side", "result"},
		),
		TradesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matching_trades_total",
				Help: "Total number of executed trades",
			},
			[]string{"symbol"},
		),
		TradedQuantity: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matching_traded_quantity_total",
				Help: "Total executed quantity",
			},
			[]string{"symbol"},
		),
		BookLevels: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "matching_book_levels",
				Help: "Current number of price levels",
			},
			[]string{"symbol", "side"},
		),
		BookQuantity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "matching_book_quantity",
				Help: "Current resting quantity",
			},
			[]string{"symbol", "side"},
		),
	}
}

// ObserveSubmit records the outcome of one submission. Sides other than BUY and SELL
// share the "invalid" label.
func (c *Collector) ObserveSubmit(symbol string, side orderbook.Side, err error) {
	c.OrdersTotal.WithLabelValues(symbol, sideLabel(side), submitResult(err)).Inc()
}

func sideLabel(side orderbook.Side) string {
	if side == orderbook.BUY || side == orderbook.SELL {
		return string(side)
	}
	return "invalid"
}

func submitResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, orderbook.ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, orderbook.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, orderbook.ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, orderbook.ErrDuplicateOrderID):
		return "duplicate_id"
	default:
		return "rejected"
	}
}

func (c *Collector) ObserveTrades(symbol string, results []orderbook.MatchResult) {
	if len(results) == 0 {
		return
	}
	c.TradesTotal.WithLabelValues(symbol).Add(float64(len(results)))
	c.TradedQuantity.WithLabelValues(symbol).Add(float64(orderbook.TotalQty(results)))
}

func (c *Collector) ObserveBook(snap orderbook.BookSnapshot) {
	c.BookLevels.WithLabelValues(snap.Symbol, string(orderbook.SELL)).Set(float64(len(snap.Asks)))
	c.BookLevels.WithLabelValues(snap.Symbol, string(orderbook.BUY)).Set(float64(len(snap.Bids)))
	c.BookQuantity.WithLabelValues(snap.Symbol, string(orderbook.SELL)).Set(float64(snap.TotalAskQty()))
	c.BookQuantity.WithLabelValues(snap.Symbol, string(orderbook.BUY)).Set(float64(snap.TotalBidQty()))
}

// Attach registers a trade callback on ob feeding TradesTotal and TradedQuantity.
func (c *Collector) Attach(ob *orderbook.OrderBook) {
	symbol := ob.Symbol()
	ob.RegisterTradeCallback(func(results []orderbook.MatchResult) {
		c.ObserveTrades(symbol, results)
	})
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
