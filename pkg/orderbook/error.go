package orderbook

import "errors"

var (
	ErrInvalidPrice     = errors.New("invalid order price")
	ErrInvalidQuantity  = errors.New("invalid order quantity")
	ErrInvalidSide      = errors.New("invalid order side")
	ErrDuplicateOrderID = errors.New("duplicate order id")
)
