package orderbook

import (
	"container/heap"

	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// priceLevel holds the resting orders at one exact price, oldest first.
type priceLevel struct {
	price    decimal.Decimal
	orders   deque.Deque[*Order]
	totalQty int64
}

func (l *priceLevel) push(order *Order) {
	l.orders.PushBack(order)
	l.totalQty += order.Qty
}

// fill decrements the front order by qty and pops it once it reaches zero.
func (l *priceLevel) fill(qty int64) *Order {
	front := l.orders.Front()
	front.Qty -= qty
	l.totalQty -= qty
	if front.Qty == 0 {
		l.orders.PopFront()
	}
	return front
}

func (l *priceLevel) empty() bool {
	return l.orders.Len() == 0
}

// priceLadder is one side of the book. Levels are only removed at the best price, so
// the heap never needs arbitrary deletion.
type priceLadder struct {
	side   Side
	levels map[string]*priceLevel
	prices *PriceHeap
}

func newPriceLadder(side Side) *priceLadder {
	less := func(i, j decimal.Decimal) bool { return i.LessThan(j) } // asks: min first
	if side == BUY {
		less = func(i, j decimal.Decimal) bool { return i.GreaterThan(j) } // bids: max first
	}
	return &priceLadder{
		side:   side,
		levels: make(map[string]*priceLevel),
		prices: NewPriceHeap(less),
	}
}

func (pl *priceLadder) best() *priceLevel {
	price, ok := pl.prices.Peek()
	if !ok {
		return nil
	}
	return pl.levels[priceKey(price)]
}

// removeBest drops the best level. Callers only do this once the level is empty.
func (pl *priceLadder) removeBest() {
	price := heap.Pop(pl.prices).(decimal.Decimal)
	delete(pl.levels, priceKey(price))
}

// levelQty is the resting quantity at price, zero when no level exists.
func (pl *priceLadder) levelQty(price decimal.Decimal) int64 {
	if level, ok := pl.levels[priceKey(price)]; ok {
		return level.totalQty
	}
	return 0
}

func (pl *priceLadder) add(order *Order) {
	key := priceKey(order.Price)
	level, ok := pl.levels[key]
	if !ok {
		level = &priceLevel{price: order.Price}
		pl.levels[key] = level
		heap.Push(pl.prices, order.Price)
	}
	level.push(order)
}

// crosses reports whether a resting level at bookPrice can trade against an incoming
// limit price on the opposite side.
func (pl *priceLadder) crosses(bookPrice, limit decimal.Decimal) bool {
	if pl.side == SELL {
		return bookPrice.LessThanOrEqual(limit)
	}
	return bookPrice.GreaterThanOrEqual(limit)
}

// each visits levels best-first until fn returns false.
func (pl *priceLadder) each(fn func(*priceLevel) bool) {
	for _, price := range pl.prices.Sorted() {
		if !fn(pl.levels[priceKey(price)]) {
			return
		}
	}
}

func (pl *priceLadder) len() int {
	return len(pl.levels)
}
