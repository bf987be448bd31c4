package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
service_name: matcher
symbol: ${TEST_SYMBOL}
log_level: debug
risk:
  max_quantity: 1000
  price_band: {floor: "1", ceil: "500"}
  tick_sizes:
    - {max_price: "100", step: "0.01"}
    - {step: "0.05"}
publisher:
  log: true
  redis:
    connection_url: "redis://localhost:6379/0"
    stream: trades
    max_len: 10000
  kafka:
    brokers: ["localhost:9092"]
    topic: trades
metrics:
  listen_addr: ":9100"
`

func TestLoad(t *testing.T) {
	t.Setenv("TEST_SYMBOL", "ACME")
	path := filepath.Join(t.TempDir(), "matcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "matcher", cfg.ServiceName)
	assert.Equal(t, "ACME", cfg.Symbol)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NotNil(t, cfg.Risk)
	assert.Equal(t, int64(1000), cfg.Risk.MaxQuantity)
	assert.Equal(t, "500", cfg.Risk.PriceBand.Ceil)
	require.Len(t, cfg.Risk.TickSizes, 2)
	assert.Equal(t, "0.05", cfg.Risk.TickSizes[1].Step)

	assert.True(t, cfg.Publisher.Log)
	require.NotNil(t, cfg.Publisher.Redis)
	assert.Equal(t, "trades", cfg.Publisher.Redis.Stream)
	assert.Equal(t, int64(10000), cfg.Publisher.Redis.MaxLen)
	require.NotNil(t, cfg.Publisher.Kafka)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Publisher.Kafka.Brokers)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
}

func TestLoadFromEnvAndDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbol: XYZ\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", cfg.Symbol)
	assert.Equal(t, "matcher", cfg.ServiceName, "unset keys keep their defaults")
	assert.Nil(t, cfg.Risk)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbol: [unterminated\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
