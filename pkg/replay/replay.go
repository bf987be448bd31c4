// Package replay drives an order book from a script, printing trades and book snapshots
// and forwarding executions to publishers.
package replay

import (
	"context"
	"io"

	"github.com/joripage/matching-engine/pkg/logging"
	"github.com/joripage/matching-engine/pkg/metrics"
	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/joripage/matching-engine/pkg/publisher"
	"github.com/joripage/matching-engine/pkg/report"
	"github.com/joripage/matching-engine/pkg/script"
	"go.uber.org/zap"
)

type Replayer struct {
	Book      *orderbook.OrderBook
	Out       io.Writer
	Publisher publisher.Publisher // optional
	Metrics   *metrics.Collector  // optional
	Logger    *logging.Logger
	Depth     int // snapshot depth per side, 0 = all
}

type Summary struct {
	Submitted int
	Rejected  int
	Trades    int
	TradedQty int64
}

// Run replays every step. A rejected order is logged and skipped; a publish failure
// stops the run.
func (r *Replayer) Run(ctx context.Context, s *script.Script) (Summary, error) {
	var sum Summary
	symbol := r.Book.Symbol()

	for _, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if step.Snapshot {
			snap := r.Book.SnapshotDepth(r.Depth)
			report.PrintBook(r.Out, snap)
			if r.Metrics != nil {
				r.Metrics.ObserveBook(snap)
			}
			continue
		}

		order := step.Order()
		results, err := r.Book.Submit(order.ID, order.Side, order.Price, order.Qty)
		if r.Metrics != nil {
			r.Metrics.ObserveSubmit(symbol, order.Side, err)
		}
		if err != nil {
			sum.Rejected++
			r.Logger.Warn(ctx, "order rejected",
				zap.Int64("order_id", order.ID),
				zap.String("side", string(order.Side)),
				zap.String("price", order.Price.String()),
				zap.Int64("qty", order.Qty),
				zap.Error(err),
			)
			continue
		}

		sum.Submitted++
		sum.Trades += len(results)
		sum.TradedQty += orderbook.TotalQty(results)
		report.PrintSubmission(r.Out, order, results)

		if r.Publisher != nil && len(results) > 0 {
			if err := r.Publisher.Publish(ctx, publisher.NewTradeEvents(symbol, results)); err != nil {
				r.Logger.Error(ctx, "publish trades failed", zap.Error(err))
				return sum, err
			}
		}
	}

	r.Logger.Info(ctx, "replay finished",
		zap.Int("submitted", sum.Submitted),
		zap.Int("rejected", sum.Rejected),
		zap.Int("trades", sum.Trades),
		zap.Int64("traded_qty", sum.TradedQty),
	)
	return sum, nil
}
