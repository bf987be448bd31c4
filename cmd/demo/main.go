package main

import (
	"context"
	"os"

	"github.com/joripage/matching-engine/pkg/logging"
	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/joripage/matching-engine/pkg/replay"
	"github.com/joripage/matching-engine/pkg/script"
)

// Replays the built-in session with no config, publishers or metrics.
func main() {
	logger := logging.NewLogger(logging.WARN)
	defer logger.Sync() // nolint

	r := &replay.Replayer{
		Book:   orderbook.NewOrderBook("DEMO", orderbook.WithLogger(logger.Zap())),
		Out:    os.Stdout,
		Logger: logger,
	}
	if _, err := r.Run(context.Background(), script.Demo()); err != nil {
		logger.Fatal(context.Background(), err.Error())
	}
}
