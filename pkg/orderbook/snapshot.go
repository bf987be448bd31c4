package orderbook

import "github.com/shopspring/decimal"

// LevelSnapshot aggregates one price level.
type LevelSnapshot struct {
	Price    decimal.Decimal
	Quantity int64
	Orders   int
}

// BookSnapshot is a point-in-time view of both ladders in display order: asks from the
// worst (highest) price down to the best, bids from the best (highest) price down.
type BookSnapshot struct {
	Symbol string
	Asks   []LevelSnapshot
	Bids   []LevelSnapshot
}

func (s BookSnapshot) BestAsk() (LevelSnapshot, bool) {
	if len(s.Asks) == 0 {
		return LevelSnapshot{}, false
	}
	return s.Asks[len(s.Asks)-1], true
}

func (s BookSnapshot) BestBid() (LevelSnapshot, bool) {
	if len(s.Bids) == 0 {
		return LevelSnapshot{}, false
	}
	return s.Bids[0], true
}

// Spread is best ask minus best bid; ok is false when either side is empty.
func (s BookSnapshot) Spread() (decimal.Decimal, bool) {
	ask, okAsk := s.BestAsk()
	bid, okBid := s.BestBid()
	if !okAsk || !okBid {
		return decimal.Zero, false
	}
	return ask.Price.Sub(bid.Price), true
}

func (s BookSnapshot) TotalAskQty() int64 {
	return sumLevels(s.Asks)
}

func (s BookSnapshot) TotalBidQty() int64 {
	return sumLevels(s.Bids)
}

func sumLevels(levels []LevelSnapshot) int64 {
	var total int64
	for _, l := range levels {
		total += l.Quantity
	}
	return total
}

func (ob *OrderBook) Snapshot() BookSnapshot {
	return ob.SnapshotDepth(0)
}

// SnapshotDepth limits each side to the depth levels nearest the spread. Zero or a
// negative depth means every level.
func (ob *OrderBook) SnapshotDepth(depth int) BookSnapshot {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	asks := aggregateLevels(ob.asks, depth)
	// asks are collected best-first, displayed worst-first
	for i, j := 0, len(asks)-1; i < j; i, j = i+1, j-1 {
		asks[i], asks[j] = asks[j], asks[i]
	}

	return BookSnapshot{
		Symbol: ob.symbol,
		Asks:   asks,
		Bids:   aggregateLevels(ob.bids, depth),
	}
}

func aggregateLevels(ladder *priceLadder, depth int) []LevelSnapshot {
	levels := make([]LevelSnapshot, 0, ladder.len())
	ladder.each(func(level *priceLevel) bool {
		levels = append(levels, LevelSnapshot{
			Price:    level.price,
			Quantity: level.totalQty,
			Orders:   level.orders.Len(),
		})
		return depth <= 0 || len(levels) < depth
	})
	return levels
}
