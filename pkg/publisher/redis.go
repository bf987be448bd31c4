package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisConfig struct {
	ConnectionURL            string `yaml:"connection_url"`
	Stream                   string `yaml:"stream"`
	MaxLen                   int64  `yaml:"max_len"`
	PoolSize                 int    `yaml:"pool_size"`
	DialTimeoutSeconds       int    `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds       int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds      int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds       int    `yaml:"idle_timeout_seconds"`
	ConnectMaxElapsedSeconds int    `yaml:"connect_max_elapsed_seconds"`
}

// InitRedis create a redis from config
func InitRedis(redisCfg *RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(redisCfg)
	if err != nil {
		return nil, err
	}
	return connectRedis(opts)
}

func redisOptions(redisCfg *RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(redisCfg.ConnectionURL)
	if err != nil {
		zap.S().Debugf("parse redis url fail: %+v", err)
		return nil, err
	}

	if redisCfg.PoolSize > 0 {
		opts.PoolSize = redisCfg.PoolSize
	}
	if redisCfg.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(redisCfg.DialTimeoutSeconds) * time.Second
	}
	if redisCfg.ReadTimeoutSeconds > 0 {
		opts.ReadTimeout = time.Duration(redisCfg.ReadTimeoutSeconds) * time.Second
	}
	if redisCfg.WriteTimeoutSeconds > 0 {
		opts.WriteTimeout = time.Duration(redisCfg.WriteTimeoutSeconds) * time.Second
	}
	if redisCfg.IdleTimeoutSeconds > 0 {
		opts.ConnMaxIdleTime = time.Duration(redisCfg.IdleTimeoutSeconds) * time.Second
	}
	return opts, nil
}

func connectRedis(opts *redis.Options) (*redis.Client, error) {
	redisClient := redis.NewClient(opts)

	cmd := redisClient.Ping(context.Background())
	if cmd.Err() != nil {
		_ = redisClient.Close()
		return nil, cmd.Err()
	}

	zap.S().Debug("connect to redis successful")
	return redisClient, nil
}

// InitRedisWithBackoff parses the config once, then retries the connection with
// exponential backoff until it succeeds or connect_max_elapsed_seconds passes. A bad
// connection url fails immediately.
func InitRedisWithBackoff(redisCfg *RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("redis: parse %s: %w", redisCfg.ConnectionURL, err)
	}

	var client *redis.Client
	boff := backoff.NewExponentialBackOff()
	if redisCfg.ConnectMaxElapsedSeconds > 0 {
		boff.MaxElapsedTime = time.Duration(redisCfg.ConnectMaxElapsedSeconds) * time.Second
	}
	err = backoff.Retry(func() error {
		var err error
		client, err = connectRedis(opts)
		if err != nil {
			zap.S().Warnf("connect redis error: %v", err)
		}
		return err
	}, boff)
	if err != nil {
		return nil, fmt.Errorf("redis: connect %s: %w", redisCfg.ConnectionURL, err)
	}
	return client, nil
}

// streamAdder is the part of redis.Cmdable the publisher needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher appends every trade to a Redis stream under the field "event".
type RedisPublisher struct {
	client streamAdder
	closer func() error
	stream string
	maxLen int64
}

func NewRedisPublisher(cfg *RedisConfig) (*RedisPublisher, error) {
	if cfg == nil || cfg.Stream == "" {
		return nil, errors.New("redis: no stream configured")
	}
	client, err := InitRedisWithBackoff(cfg)
	if err != nil {
		return nil, err
	}
	return &RedisPublisher{
		client: client,
		closer: client.Close,
		stream: cfg.Stream,
		maxLen: cfg.MaxLen,
	}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, events []TradeEvent) error {
	for _, e := range events {
		value, err := e.Marshal()
		if err != nil {
			return fmt.Errorf("redis: encode trade %d: %w", e.TradeID, err)
		}
		args := &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]any{"event": string(value)},
		}
		if p.maxLen > 0 {
			args.MaxLen = p.maxLen
			args.Approx = true
		}
		if err := p.client.XAdd(ctx, args).Err(); err != nil {
			return fmt.Errorf("redis: xadd trade %d to %s: %w", e.TradeID, p.stream, err)
		}
	}
	return nil
}

func (p *RedisPublisher) Close(context.Context) error {
	if p == nil || p.closer == nil {
		return nil
	}
	return p.closer()
}
