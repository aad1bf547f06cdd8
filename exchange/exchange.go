// Package exchange is the multi-market registry above the single-market
// core: one OrderBook + MatchingEngine + Ingestor per symbol, created
// lazily. Each market's determinism contract (spec.md's "trade stream is
// a pure function of (initial empty book, event sequence)") holds per
// symbol; interleaving events for other symbols through the same
// Exchange never affects it.
//
// Adapted from the teacher's ExchangeEngine: reads are lock-free via
// atomic.Value over an immutable map; creating a new market copies the
// map under a mutex, a rare path compared to the read-heavy hot path.
package exchange

import (
	"sync"
	"sync/atomic"

	"elob/domain"
	"elob/ingest"
	"elob/matching"
	"elob/orderbook"
)

// Market bundles one symbol's book, engine and ingestor.
type Market struct {
	Symbol   string
	Book     *orderbook.OrderBook
	Engine   *matching.Engine
	Ingestor *ingest.Ingestor
}

func newMarket(symbol string) *Market {
	book := orderbook.New()
	engine := matching.New(symbol, book)
	return &Market{
		Symbol:   symbol,
		Book:     book,
		Engine:   engine,
		Ingestor: ingest.New(book, engine),
	}
}

// Exchange is a symbol-keyed registry of Markets.
type Exchange struct {
	markets atomic.Value // map[string]*Market
	mu      sync.Mutex
}

// New creates an empty exchange.
func New() *Exchange {
	e := &Exchange{}
	e.markets.Store(make(map[string]*Market))
	return e
}

// Get returns the market for symbol, creating it if it doesn't exist.
func (e *Exchange) Get(symbol string) *Market {
	markets := e.markets.Load().(map[string]*Market)
	if m, ok := markets[symbol]; ok {
		return m
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	markets = e.markets.Load().(map[string]*Market)
	if m, ok := markets[symbol]; ok {
		return m
	}

	m := newMarket(symbol)

	next := make(map[string]*Market, len(markets)+1)
	for k, v := range markets {
		next[k] = v
	}
	next[symbol] = m
	e.markets.Store(next)

	return m
}

// Process routes ev to symbol's market and returns the trades it
// produced.
func (e *Exchange) Process(symbol string, ev ingest.Event) []domain.Trade {
	return e.Get(symbol).Ingestor.Process(ev)
}

// Symbols returns every symbol with a market created so far.
func (e *Exchange) Symbols() []string {
	markets := e.markets.Load().(map[string]*Market)
	out := make([]string, 0, len(markets))
	for k := range markets {
		out = append(out, k)
	}
	return out
}
