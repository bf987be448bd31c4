package riskrule

import (
	"fmt"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
)

// TickSizeConfig is one price tier. MaxPrice "0" or empty means no upper bound; tiers
// are checked in order and the first one covering the price applies.
type TickSizeConfig struct {
	MaxPrice string `yaml:"max_price"`
	Step     string `yaml:"step"`
}

type tickTier struct {
	maxPrice decimal.Decimal // zero = no limit
	step     decimal.Decimal
}

type TickSizeRule struct {
	tiers []tickTier
}

func NewTickSizeRule(cfgs []TickSizeConfig) (*TickSizeRule, error) {
	r := &TickSizeRule{}
	for i, c := range cfgs {
		maxPrice := decimal.Zero
		if c.MaxPrice != "" {
			var err error
			if maxPrice, err = decimal.NewFromString(c.MaxPrice); err != nil {
				return nil, fmt.Errorf("tick tier %d max_price: %w", i, err)
			}
		}
		step, err := decimal.NewFromString(c.Step)
		if err != nil {
			return nil, fmt.Errorf("tick tier %d step: %w", i, err)
		}
		if !step.IsPositive() {
			return nil, fmt.Errorf("tick tier %d step must be positive, got %s", i, step)
		}
		r.tiers = append(r.tiers, tickTier{maxPrice: maxPrice, step: step})
	}
	return r, nil
}

func (r *TickSizeRule) Check(order *orderbook.Order) error {
	for _, tier := range r.tiers {
		if tier.maxPrice.IsZero() || order.Price.LessThanOrEqual(tier.maxPrice) {
			if !order.Price.Mod(tier.step).IsZero() {
				return fmt.Errorf("%w: %s is not a multiple of %s", ErrTickSize, order.Price, tier.step)
			}
			return nil
		}
	}

	// no tier covers the price -> no rule
	return nil
}
