package riskrule

import (
	"fmt"

	"github.com/joripage/matching-engine/pkg/orderbook"
)

type MaxQuantityRule struct {
	Max int64
}

func (r *MaxQuantityRule) Check(order *orderbook.Order) error {
	if order.Qty > r.Max {
		return fmt.Errorf("%w: %d > %d", ErrMaxQuantity, order.Qty, r.Max)
	}
	return nil
}
