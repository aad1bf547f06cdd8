// Package ingest turns a typed Event stream into idempotent, ordered
// book mutations and a trade stream. It is not authoritative for event
// ordering — it processes whatever order the caller hands it; the trade
// stream is a pure function of (initial empty book, event sequence).
package ingest

import "elob/domain"

// Payload is the closed tagged union a dispatch is done over: exactly
// one of NewOrderPayload, CancelPayload, ModifyPayload, TradePayload, or
// nil (the empty payload). Dispatch is a type switch, never open
// polymorphism.
type Payload interface {
	isPayload()
}

// NewOrderPayload introduces an incoming order. It is run through the
// matching engine as a taker; any residual rests on the book.
type NewOrderPayload struct {
	Order domain.Order
}

// CancelPayload removes a resting order by id.
type CancelPayload struct {
	OrderID uint64
}

// ModifyPayload changes a resting order's price and/or quantity.
type ModifyPayload struct {
	OrderID     uint64
	NewPrice    int64
	NewQuantity uint64
}

// TradePayload carries a previously-logged trade. It is inert in the
// ingest path: Ingestor.Process returns no trades for it and leaves the
// book untouched. The replay runner does not build it; it keeps logged
// trades as replay.Record values instead.
type TradePayload struct {
	Trade domain.Trade
}

func (NewOrderPayload) isPayload() {}
func (CancelPayload) isPayload()   {}
func (ModifyPayload) isPayload()   {}
func (TradePayload) isPayload()    {}

// Event is one record of the input stream: an id, a logical timestamp,
// and a payload. A nil Payload is the empty-payload no-op case.
type Event struct {
	EventID   uint64
	Timestamp uint64
	Payload   Payload
}
