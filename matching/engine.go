// Package matching implements price-time priority matching against an
// orderbook.OrderBook: sweeping the opposing side's best levels while
// price crosses and quantity remains, producing trades with a
// monotonically increasing trade id.
package matching

import (
	"elob/domain"
	"elob/orderbook"
)

// Engine holds an exclusive reference to one OrderBook and the
// trade-id counter for that book. Trade-id generation lives here, not in
// the book, so the book stays purely structural.
type Engine struct {
	book        *orderbook.OrderBook
	symbol      string
	nextTradeID uint64
}

// New creates a matching engine over book, starting trade ids at 1.
func New(symbol string, book *orderbook.OrderBook) *Engine {
	return &Engine{book: book, symbol: symbol, nextTradeID: 1}
}

// Book returns the engine's order book.
func (e *Engine) Book() *orderbook.OrderBook { return e.book }

// Process drives the book toward a non-crossed state with respect to
// taker, returning the trades produced in execution order. taker is
// mutated in place (Remaining decreases); the caller decides whether to
// rest any residual quantity. A malformed taker (e.g. zero quantity)
// simply produces no trades — the engine never errors.
func (e *Engine) Process(taker *domain.Order, timestamp uint64) []domain.Trade {
	if taker.Side == domain.SideBuy {
		return e.sweep(taker, timestamp, domain.SideSell, e.book.BestAsk,
			func(askPrice int64) bool { return askPrice > taker.Price })
	}
	return e.sweep(taker, timestamp, domain.SideBuy, e.book.BestBid,
		func(bidPrice int64) bool { return bidPrice < taker.Price })
}

// sweep is the side-symmetric core of Process: repeatedly take
// the opposing side's best level, cross while it's eligible and the
// taker isn't filled, then move on.
func (e *Engine) sweep(
	taker *domain.Order,
	timestamp uint64,
	makerSide domain.Side,
	bestLevel func() *orderbook.PriceLevel,
	noCross func(levelPrice int64) bool,
) []domain.Trade {
	var trades []domain.Trade

	for !taker.IsFilled() {
		lvl := bestLevel()
		if lvl == nil {
			break
		}
		if noCross(lvl.Price()) {
			break
		}

		for elem := lvl.Front(); elem != nil && !taker.IsFilled(); {
			next := elem.Next()
			maker := orderbook.OrderAt(elem)

			qty := taker.Remaining
			if maker.Remaining < qty {
				qty = maker.Remaining
			}
			lvl.FillOrder(elem, qty)
			taker.Fill(qty)

			trades = append(trades, domain.NewTrade(
				e.nextTradeID, e.symbol, maker.OrderID, taker.OrderID,
				maker.Price, qty, timestamp, taker.Side == domain.SideBuy,
			))
			e.nextTradeID++

			if maker.IsFilled() {
				e.book.Cancel(maker.OrderID)
			}
			elem = next
		}

		if lvl.Empty() {
			e.book.RemoveLevelIfEmpty(makerSide, lvl.Price())
		}
	}

	return trades
}
