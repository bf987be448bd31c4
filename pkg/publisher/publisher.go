// Package publisher delivers trade notifications produced by the order book to
// external sinks.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TradeEvent is the wire form of one execution.
type TradeEvent struct {
	TradeID     uint64          `json:"trade_id"`
	Symbol      string          `json:"symbol"`
	BuyOrderID  int64           `json:"buy_order_id"`
	SellOrderID int64           `json:"sell_order_id"`
	TakerSide   orderbook.Side  `json:"taker_side"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	ExecutedAt  time.Time       `json:"executed_at"`
}

func NewTradeEvents(symbol string, results []orderbook.MatchResult) []TradeEvent {
	events := make([]TradeEvent, 0, len(results))
	for _, r := range results {
		events = append(events, TradeEvent{
			TradeID:     r.TradeID,
			Symbol:      symbol,
			BuyOrderID:  r.BuyOrderID,
			SellOrderID: r.SellOrderID,
			TakerSide:   r.TakerSide,
			Price:       r.Price,
			Quantity:    r.Qty,
			ExecutedAt:  r.Time,
		})
	}
	return events
}

func (e TradeEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, events []TradeEvent) error
	Close(ctx context.Context) error
}

// Multi fans events out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, events []TradeEvent) error {
	if len(events) == 0 {
		return nil
	}
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close(ctx context.Context) error {
	var errs []error
	for _, p := range m {
		if err := p.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPublisher writes every trade as an info entry.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, events []TradeEvent) error {
	for _, e := range events {
		p.logger.Info("trade executed",
			zap.Uint64("trade_id", e.TradeID),
			zap.String("symbol", e.Symbol),
			zap.Int64("buy_order_id", e.BuyOrderID),
			zap.Int64("sell_order_id", e.SellOrderID),
			zap.String("taker_side", string(e.TakerSide)),
			zap.String("price", e.Price.String()),
			zap.Int64("quantity", e.Quantity),
		)
	}
	return nil
}

// Close flushes the logger. Sync errors on terminals are ignored.
func (p *LogPublisher) Close(context.Context) error {
	_ = p.logger.Sync()
	return nil
}
