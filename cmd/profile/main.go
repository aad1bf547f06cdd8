// Command profile CPU-profiles the ring-buffer concurrency path: one
// producer goroutine feeding a RingCore's SPSCQueue while its consumer
// goroutine drains it into the matching core, so the profile captures
// both sides of the wrapper rather than the core alone (see cmd/benchmark).
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"elob/concurrency"
	"elob/domain"
	"elob/ingest"
	"elob/matching"
	"elob/orderbook"
)

func main() {
	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		panic(err)
	}
	defer pprof.StopCPUProfile()

	fmt.Println("=== ring buffer profile ===")
	fmt.Println("writing cpu.prof")

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	book := orderbook.New()
	engine := matching.New("BTCUSDT", book)
	ingestor := ingest.New(book, engine)

	var tradeCount atomic.Int64
	ring := concurrency.NewRingCore(1<<16, ingestor, func(trades []domain.Trade) {
		tradeCount.Add(int64(len(trades)))
	}, logger)
	ring.Start()

	const duration = 10 * time.Second
	var orderCount atomic.Int64
	stop := make(chan struct{})

	go func() {
		orderID := uint64(0)
		for {
			select {
			case <-stop:
				return
			default:
				orderID++
				var side domain.Side
				if orderID%2 == 0 {
					side = domain.SideBuy
				} else {
					side = domain.SideSell
				}
				price := int64(50000 + orderID%200)

				ev := ingest.Event{
					EventID:   orderID,
					Timestamp: orderID,
					Payload: ingest.NewOrderPayload{
						Order: domain.NewOrder(orderID, "BTCUSDT", side, price, 1, orderID),
					},
				}
				if ring.TrySubmit(ev) {
					orderCount.Add(1)
				}
			}
		}
	}()

	start := time.Now()
	time.Sleep(duration)
	close(stop)
	ring.Stop()
	elapsed := time.Since(start)

	fmt.Println("=== results ===")
	fmt.Printf("orders submitted: %d\n", orderCount.Load())
	fmt.Printf("orders dropped:   %d\n", ring.Dropped())
	fmt.Printf("trades produced:  %d\n", tradeCount.Load())
	fmt.Printf("elapsed:          %v\n", elapsed)
	fmt.Println("analyze with: go tool pprof -http=:8080 cpu.prof")
}
