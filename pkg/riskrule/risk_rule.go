// Package riskrule holds pre-trade checks for the order book. Every rule satisfies
// orderbook.Rule and runs before the book is mutated.
package riskrule

import (
	"errors"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

var (
	ErrTickSize    = errors.New("invalid tick size")
	ErrPriceBand   = errors.New("price limit violation")
	ErrMaxQuantity = errors.New("max quantity exceeded")
)

type RiskRule interface {
	Check(order *orderbook.Order) error
}

var _ orderbook.Rule = RiskRule(nil)

// Config is the yaml form of the rule set. Zero values disable a rule.
type Config struct {
	MaxQuantity int64            `yaml:"max_quantity"`
	PriceBand   *PriceBandConfig `yaml:"price_band"`
	TickSizes   []TickSizeConfig `yaml:"tick_sizes"`
}

// FromConfig builds the enabled rules in a stable order.
func FromConfig(cfg *Config) ([]orderbook.Rule, error) {
	if cfg == nil {
		return nil, nil
	}

	var rules []orderbook.Rule
	if cfg.MaxQuantity > 0 {
		rules = append(rules, &MaxQuantityRule{Max: cfg.MaxQuantity})
	}
	if cfg.PriceBand != nil {
		r, err := NewLimitPriceRule(cfg.PriceBand)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if len(cfg.TickSizes) > 0 {
		r, err := NewTickSizeRule(cfg.TickSizes)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}
