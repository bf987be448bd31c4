package config

import (
	"os"

	"github.com/joripage/matching-engine/pkg/publisher"
	"github.com/joripage/matching-engine/pkg/riskrule"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ServiceName string           `yaml:"service_name"`
	Symbol      string           `yaml:"symbol"`
	LogLevel    string           `yaml:"log_level"`
	Risk        *riskrule.Config `yaml:"risk"`
	Publisher   PublisherConfig  `yaml:"publisher"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

type PublisherConfig struct {
	Log   bool                   `yaml:"log"`
	Redis *publisher.RedisConfig `yaml:"redis"`
	Kafka *publisher.KafkaConfig `yaml:"kafka"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"` // empty disables the /metrics endpoint
}

// Default is used when no config file is given.
func Default() *AppConfig {
	return &AppConfig{
		ServiceName: "matcher",
		Symbol:      "DEMO",
		LogLevel:    "info",
	}
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}
	if len(filePath) == 0 {
		zap.S().Debug("no config file, using defaults")
		return Default(), nil
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := Default()

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
