// file: pkg/orderbook/orderbook.go

package orderbook

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Rule is a pre-trade check run before the book is touched.
type Rule interface {
	Check(order *Order) error
}

// OrderBook matches limit orders for a single instrument by price-time priority.
type OrderBook struct {
	symbol string

	bids *priceLadder
	asks *priceLadder

	ordersByID map[int64]*Order // resting orders only

	callbacks []func([]MatchResult)
	rules     []Rule

	logger  *zap.Logger
	now     func() time.Time
	seq     uint64
	tradeID uint64

	mu sync.Mutex
}

type Option func(*OrderBook)

func WithLogger(logger *zap.Logger) Option {
	return func(ob *OrderBook) {
		if logger != nil {
			ob.logger = logger
		}
	}
}

// WithClock replaces time.Now for order and trade timestamps.
func WithClock(now func() time.Time) Option {
	return func(ob *OrderBook) {
		if now != nil {
			ob.now = now
		}
	}
}

func WithRules(rules ...Rule) Option {
	return func(ob *OrderBook) {
		ob.rules = append(ob.rules, rules...)
	}
}

func NewOrderBook(symbol string, opts ...Option) *OrderBook {
	ob := &OrderBook{
		symbol:     symbol,
		bids:       newPriceLadder(BUY),
		asks:       newPriceLadder(SELL),
		ordersByID: make(map[int64]*Order),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ob)
	}
	ob.logger = ob.logger.With(zap.String("symbol", symbol))

	return ob
}

func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// RegisterTradeCallback adds fn to the callbacks run after every submission that
// produced trades. Callbacks run outside the book lock, in registration order.
func (ob *OrderBook) RegisterTradeCallback(fn func(results []MatchResult)) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.callbacks = append(ob.callbacks, fn)
}

// Submit matches a limit order against the opposite ladder and rests any remainder.
// A rejected submission returns an error and leaves the book unchanged.
func (ob *OrderBook) Submit(id int64, side Side, price decimal.Decimal, qty int64) ([]MatchResult, error) {
	ob.mu.Lock()
	results, err := ob.submit(id, side, price, qty)
	callbacks := ob.callbacks
	ob.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if len(results) > 0 {
		for _, cb := range callbacks {
			cb(results)
		}
	}

	return results, nil
}

func (ob *OrderBook) submit(id int64, side Side, price decimal.Decimal, qty int64) ([]MatchResult, error) {
	order := &Order{
		ID:    id,
		Side:  side,
		Price: price,
		Qty:   qty,
	}
	if err := ob.validate(order); err != nil {
		ob.logger.Debug("order rejected", zap.Int64("order_id", id), zap.Error(err))
		return nil, err
	}

	ob.seq++
	order.Seq = ob.seq
	order.CreatedAt = ob.now()

	counter := ob.asks
	own := ob.bids
	if side == SELL {
		counter = ob.bids
		own = ob.asks
	}

	results := ob.matchOrder(order, counter)

	if order.Qty > 0 {
		own.add(order)
		ob.ordersByID[order.ID] = order
		ob.logger.Debug("order rested",
			zap.Int64("order_id", order.ID),
			zap.String("side", string(order.Side)),
			zap.String("price", order.Price.String()),
			zap.Int64("qty", order.Qty),
		)
	}

	return results, nil
}

func (ob *OrderBook) validate(order *Order) error {
	if !order.Side.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSide, order.Side)
	}
	if !order.Price.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, order.Price)
	}
	if order.Qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, order.Qty)
	}
	if _, ok := ob.ordersByID[order.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateOrderID, order.ID)
	}
	// the remainder may rest in full, so the own level total must stay representable
	own := ob.bids
	if order.Side == SELL {
		own = ob.asks
	}
	if levelQty := own.levelQty(order.Price); levelQty > math.MaxInt64-order.Qty {
		return fmt.Errorf("%w: %d on top of %d resting at %s overflows", ErrInvalidQuantity, order.Qty, levelQty, order.Price)
	}
	for _, rule := range ob.rules {
		if err := rule.Check(order); err != nil {
			return err
		}
	}
	return nil
}

// matchOrder walks counter best-first while the incoming order has quantity left and
// the best level still crosses its limit.
func (ob *OrderBook) matchOrder(order *Order, counter *priceLadder) []MatchResult {
	var results []MatchResult

	for order.Qty > 0 {
		level := counter.best()
		if level == nil || !counter.crosses(level.price, order.Price) {
			break
		}

		for order.Qty > 0 && !level.empty() {
			matchQty := min(order.Qty, level.orders.Front().Qty)
			order.Qty -= matchQty
			maker := level.fill(matchQty)
			if maker.Qty == 0 {
				delete(ob.ordersByID, maker.ID)
			}

			results = append(results, ob.newMatchResult(order, maker, level.price, matchQty))
		}

		if level.empty() {
			counter.removeBest()
		}
	}

	return results
}

func (ob *OrderBook) newMatchResult(taker, maker *Order, price decimal.Decimal, qty int64) MatchResult {
	ob.tradeID++
	result := MatchResult{
		TradeID:     ob.tradeID,
		BuyOrderID:  taker.ID,
		SellOrderID: maker.ID,
		TakerSide:   taker.Side,
		Price:       price,
		Qty:         qty,
		Time:        ob.now(),
	}
	if taker.Side == SELL {
		result.BuyOrderID, result.SellOrderID = maker.ID, taker.ID
	}

	ob.logger.Debug("trade",
		zap.Uint64("trade_id", result.TradeID),
		zap.Int64("buy_order_id", result.BuyOrderID),
		zap.Int64("sell_order_id", result.SellOrderID),
		zap.String("price", price.String()),
		zap.Int64("qty", qty),
	)
	return result
}

func (ob *OrderBook) BestBid() (decimal.Decimal, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return ob.bids.prices.Peek()
}

func (ob *OrderBook) BestAsk() (decimal.Decimal, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return ob.asks.prices.Peek()
}

// Resting returns a copy of the resting order with the given id.
func (ob *OrderBook) Resting(id int64) (Order, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order, ok := ob.ordersByID[id]
	if !ok {
		return Order{}, false
	}
	return *order, true
}
