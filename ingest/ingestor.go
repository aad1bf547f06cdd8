package ingest

import (
	"elob/domain"
	"elob/matching"
	"elob/orderbook"
)

// Ingestor dispatches an Event on its payload variant against one
// market's book and engine. It swallows every book-operation boolean:
// unknown-id cancels/modifies are soft no-ops, never surfaced upward.
type Ingestor struct {
	book   *orderbook.OrderBook
	engine *matching.Engine
}

// New builds an ingestor over book and engine. Both must belong to the
// same market.
func New(book *orderbook.OrderBook, engine *matching.Engine) *Ingestor {
	return &Ingestor{book: book, engine: engine}
}

// Process dispatches ev and returns whatever trades it produced.
func (in *Ingestor) Process(ev Event) []domain.Trade {
	switch p := ev.Payload.(type) {
	case NewOrderPayload:
		taker := p.Order
		trades := in.engine.Process(&taker, ev.Timestamp)
		if !taker.IsFilled() {
			in.book.Insert(domain.NewOrder(
				taker.OrderID, taker.Symbol, taker.Side, taker.Price,
				taker.Remaining, ev.Timestamp,
			))
		}
		return trades

	case CancelPayload:
		in.book.Cancel(p.OrderID)
		return nil

	case ModifyPayload:
		in.book.Modify(p.OrderID, p.NewPrice, p.NewQuantity, ev.Timestamp)
		return nil

	case TradePayload:
		return nil

	default:
		return nil
	}
}
