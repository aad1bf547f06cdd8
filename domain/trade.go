package domain

// Trade is an immutable record of one match between a resting maker order
// and an incoming taker order. TradeID is assigned by the matching engine
// and forms a strictly increasing sequence per engine instance. Price is
// always the maker's resting price (price-improvement for the taker).
// Timestamp is the triggering event's logical timestamp, not a wall clock.
type Trade struct {
	TradeID    uint64
	Symbol     string
	MakerID    uint64
	TakerID    uint64
	Price      int64
	Quantity   uint64
	Timestamp  uint64
	TakerIsBuy bool
}

// NewTrade builds a Trade record for one fill.
func NewTrade(tradeID uint64, symbol string, makerID, takerID uint64, price int64, quantity uint64, timestamp uint64, takerIsBuy bool) Trade {
	return Trade{
		TradeID:    tradeID,
		Symbol:     symbol,
		MakerID:    makerID,
		TakerID:    takerID,
		Price:      price,
		Quantity:   quantity,
		Timestamp:  timestamp,
		TakerIsBuy: takerIsBuy,
	}
}
