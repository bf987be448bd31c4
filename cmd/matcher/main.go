package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joripage/matching-engine/config"
	"github.com/joripage/matching-engine/pkg/logging"
	"github.com/joripage/matching-engine/pkg/metrics"
	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/joripage/matching-engine/pkg/publisher"
	"github.com/joripage/matching-engine/pkg/replay"
	"github.com/joripage/matching-engine/pkg/riskrule"
	"github.com/joripage/matching-engine/pkg/script"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	var configFile, ordersFile string
	var depth int
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.StringVar(&ordersFile, "orders", "", "Order script to replay (built-in demo when empty)")
	flag.IntVar(&depth, "depth", 0, "Price levels per side in book prints, 0 for all")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	logger := logging.NewLogger(level).With(zap.String("service", cfg.ServiceName))
	defer logger.Sync() // nolint
	zap.ReplaceGlobals(logger.Zap())

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithRunID(ctx, "")

	rules, err := riskrule.FromConfig(cfg.Risk)
	if err != nil {
		logger.Fatal(ctx, "invalid risk config", zap.Error(err))
	}

	book := orderbook.NewOrderBook(cfg.Symbol,
		orderbook.WithLogger(logger.Zap()),
		orderbook.WithRules(rules...),
	)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	collector.Attach(book)

	var srv *http.Server
	if cfg.Metrics.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv = &http.Server{Addr: cfg.Metrics.ListenAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info(ctx, "metrics listening", zap.String("addr", cfg.Metrics.ListenAddr))
	}

	pub, err := buildPublisher(cfg.Publisher, logger)
	if err != nil {
		logger.Fatal(ctx, "init publisher failed", zap.Error(err))
	}
	defer func() {
		if err := pub.Close(context.Background()); err != nil {
			logger.Warn(ctx, "close publisher", zap.Error(err))
		}
	}()

	steps := script.Demo()
	if ordersFile != "" {
		if steps, err = script.Load(ordersFile); err != nil {
			logger.Fatal(ctx, "load order script failed", zap.String("file", ordersFile), zap.Error(err))
		}
	}

	r := &replay.Replayer{
		Book:      book,
		Out:       os.Stdout,
		Publisher: pub,
		Metrics:   collector,
		Logger:    logger,
		Depth:     depth,
	}
	if _, err := r.Run(ctx, steps); err != nil {
		logger.Error(ctx, "replay failed", zap.Error(err))
	}

	if srv != nil {
		// keep serving the final book metrics until interrupted
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}
}

func buildPublisher(cfg config.PublisherConfig, logger *logging.Logger) (publisher.Multi, error) {
	var pubs publisher.Multi
	if cfg.Log {
		pubs = append(pubs, publisher.NewLogPublisher(logger.Zap()))
	}
	if cfg.Redis != nil {
		p, err := publisher.NewRedisPublisher(cfg.Redis)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	if cfg.Kafka != nil {
		p, err := publisher.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			_ = pubs.Close(context.Background())
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, nil
}
