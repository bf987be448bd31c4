package riskrule

import (
	"fmt"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
)

type PriceBandConfig struct {
	Floor string `yaml:"floor"`
	Ceil  string `yaml:"ceil"`
}

// LimitPriceRule rejects prices outside [floor, ceil]. An empty bound is open.
type LimitPriceRule struct {
	floor decimal.NullDecimal
	ceil  decimal.NullDecimal
}

func NewLimitPriceRule(cfg *PriceBandConfig) (*LimitPriceRule, error) {
	r := &LimitPriceRule{}
	var err error
	if r.floor, err = parseBound(cfg.Floor); err != nil {
		return nil, fmt.Errorf("price band floor: %w", err)
	}
	if r.ceil, err = parseBound(cfg.Ceil); err != nil {
		return nil, fmt.Errorf("price band ceil: %w", err)
	}
	if r.floor.Valid && r.ceil.Valid && r.floor.Decimal.GreaterThan(r.ceil.Decimal) {
		return nil, fmt.Errorf("price band floor %s above ceil %s", r.floor.Decimal, r.ceil.Decimal)
	}
	return r, nil
}

func parseBound(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (r *LimitPriceRule) Check(order *orderbook.Order) error {
	if r.ceil.Valid && order.Price.GreaterThan(r.ceil.Decimal) {
		return fmt.Errorf("%w: %s above %s", ErrPriceBand, order.Price, r.ceil.Decimal)
	}
	if r.floor.Valid && order.Price.LessThan(r.floor.Decimal) {
		return fmt.Errorf("%w: %s below %s", ErrPriceBand, order.Price, r.floor.Decimal)
	}
	return nil
}
