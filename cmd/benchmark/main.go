// Command benchmark drives the single-threaded core directly: no ring
// buffer, no goroutines, just back-to-back order submission through
// one Ingestor, to measure the matching engine's own throughput
// unclouded by any transport wrapper.
package main

import (
	"fmt"
	"time"

	"elob/domain"
	"elob/ingest"
	"elob/matching"
	"elob/orderbook"
)

func main() {
	book := orderbook.New()
	engine := matching.New("BTCUSDT", book)
	ingestor := ingest.New(book, engine)

	const numOrders = 2_000_000
	var totalTrades int

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		var side domain.Side
		if i%2 == 0 {
			side = domain.SideBuy
		} else {
			side = domain.SideSell
		}
		price := int64(50000 + i%200)

		ev := ingest.Event{
			EventID:   uint64(i + 1),
			Timestamp: uint64(i + 1),
			Payload: ingest.NewOrderPayload{
				Order: domain.NewOrder(uint64(i+1), "BTCUSDT", side, price, 1, uint64(i+1)),
			},
		}
		totalTrades += len(ingestor.Process(ev))
	}
	elapsed := time.Since(start)

	fmt.Println("=== matching core throughput ===")
	fmt.Printf("orders:  %d\n", numOrders)
	fmt.Printf("trades:  %d\n", totalTrades)
	fmt.Printf("elapsed: %v\n", elapsed)
	fmt.Printf("orders/sec: %.0f\n", float64(numOrders)/elapsed.Seconds())
}
