// Package script loads yaml order scripts replayed against an order book.
package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Step is either an order submission or, with Snapshot set, a request to print the book.
type Step struct {
	ID       int64           `yaml:"id"`
	Side     string          `yaml:"side"`
	Price    decimal.Decimal `yaml:"price"`
	Quantity int64           `yaml:"quantity"`
	Snapshot bool            `yaml:"snapshot"`
}

func (s Step) Order() orderbook.Order {
	return orderbook.Order{
		ID:    s.ID,
		Side:  orderbook.Side(strings.ToUpper(s.Side)),
		Price: s.Price,
		Qty:   s.Quantity,
	}
}

type Script struct {
	Steps []Step `yaml:"orders"`
}

func Parse(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse order script: %w", err)
	}
	return s, nil
}

func Load(filePath string) (*Script, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Demo is the scenario the demo command replays when no script is given.
func Demo() *Script {
	return &Script{Steps: []Step{
		{ID: 1, Side: "SELL", Price: decimal.NewFromInt(101), Quantity: 100},
		{ID: 2, Side: "BUY", Price: decimal.NewFromInt(99), Quantity: 50},
		{Snapshot: true},
		{ID: 3, Side: "BUY", Price: decimal.NewFromInt(102), Quantity: 60},
		{Snapshot: true},
	}}
}
