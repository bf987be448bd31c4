package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
)

const (
	minPrice = 10000 // in cents
	maxPrice = 20000
	minQty   = 1
	maxQty   = 100
)

func randomOrder(rnd *rand.Rand) (orderbook.Side, decimal.Decimal, int64) {
	side := orderbook.BUY
	if rnd.Intn(2) == 0 {
		side = orderbook.SELL
	}
	price := decimal.New(int64(minPrice+rnd.Intn(maxPrice-minPrice+1)), -2)
	qty := int64(rnd.Intn(maxQty-minQty+1) + minQty)
	return side, price, qty
}

func main() {
	var numOrders int
	var seed int64
	flag.IntVar(&numOrders, "orders", 1_000_000, "Number of random orders")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	rnd := rand.New(rand.NewSource(seed))
	ob := orderbook.NewOrderBook("ABC")

	totalMatched := 0
	totalQty := int64(0)
	cb := func(results []orderbook.MatchResult) {
		for _, r := range results {
			totalMatched++
			totalQty += r.Qty
			// print the first few matches as a sanity check
			if totalMatched <= 5 {
				log.Printf("Match: BUY[%d] <=> SELL[%d] @ %s Qty %d\n",
					r.BuyOrderID, r.SellOrderID, r.Price, r.Qty)
			}
		}
	}
	ob.RegisterTradeCallback(cb)

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		side, price, qty := randomOrder(rnd)
		if _, err := ob.Submit(int64(i+1), side, price, qty); err != nil {
			log.Fatalf("submit %d: %v", i+1, err)
		}
	}

	elapsed := time.Since(start)
	snap := ob.Snapshot()

	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Matches    : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty: %d\n", totalQty)
	fmt.Printf("Resting Levels   : %d asks / %d bids\n", len(snap.Asks), len(snap.Bids))
	fmt.Printf("Time Taken       : %s\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("Throughput       : %.0f orders/s\n", float64(numOrders)/elapsed.Seconds())
	}
}
