// Package orderbook implements the price-time priority resting-order
// store: two price-indexed maps (bids descending, asks ascending) each
// holding FIFO price levels, plus an O(1) order-id index for cancel and
// modify. It has no notion of matching — that lives in package matching.
package orderbook

import (
	"container/list"
	"fmt"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"elob/domain"
)

// Locator is the order-index's back-reference for one resting order: the
// side and price it rests at, the level it lives in, its position handle
// within that level, and the timestamp it was last (re)placed with. The
// book owns the order through its PriceLevel; the locator never owns
// anything, it only finds.
type Locator struct {
	Side      domain.Side
	Price     int64
	Level     *PriceLevel
	Elem      *list.Element
	Timestamp uint64
}

// OrderBook is a single market's resting-order store: bids sorted
// descending, asks sorted ascending, plus order_id -> Locator.
type OrderBook struct {
	bids  *rbt.Tree[int64, *PriceLevel]
	asks  *rbt.Tree[int64, *PriceLevel]
	index map[uint64]*Locator
}

// New creates an empty order book.
func New() *OrderBook {
	return &OrderBook{
		bids:  rbt.NewWith[int64, *PriceLevel](descendingPrice),
		asks:  rbt.NewWith[int64, *PriceLevel](ascendingPrice),
		index: make(map[uint64]*Locator),
	}
}

func descendingPrice(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func ascendingPrice(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (ob *OrderBook) treeFor(side domain.Side) *rbt.Tree[int64, *PriceLevel] {
	if side == domain.SideBuy {
		return ob.bids
	}
	return ob.asks
}

// Insert places o into the book. Precondition: o.OrderID is not already
// indexed; violating it is a programming bug, not a runtime condition the
// core tolerates, so it panics rather than silently corrupting the index.
func (ob *OrderBook) Insert(o domain.Order) {
	if _, exists := ob.index[o.OrderID]; exists {
		panic(fmt.Sprintf("orderbook: insert of already-indexed order %d", o.OrderID))
	}

	tree := ob.treeFor(o.Side)
	level, found := tree.Get(o.Price)
	if !found {
		level = newPriceLevel(o.Price)
		tree.Put(o.Price, level)
	}

	stored := o
	elem := level.addOrder(&stored)

	ob.index[o.OrderID] = &Locator{
		Side:      o.Side,
		Price:     o.Price,
		Level:     level,
		Elem:      elem,
		Timestamp: o.Timestamp,
	}
}

// Cancel removes order_id from the book. Returns false if the id is
// unknown — a no-op, never fatal, so duplicate or stale cancels are safe.
func (ob *OrderBook) Cancel(orderID uint64) bool {
	loc, exists := ob.index[orderID]
	if !exists {
		return false
	}

	loc.Level.eraseOrder(loc.Elem)
	ob.removeLevelIfEmpty(loc.Side, loc.Price)
	delete(ob.index, orderID)
	return true
}

// Modify changes an order's price and/or quantity. Returns false if the
// id is unknown.
//
// filled = quantity - remaining as observed before the change. If
// new_quantity <= filled the modify is rejected (false, order untouched)
// per spec.md's resolution of the over-shrink open question; otherwise
// remaining becomes new_quantity - filled regardless of whether price
// changed.
//
// A price-unchanged modify updates the order in place without touching
// its position in the level's FIFO sequence (time priority preserved). A
// price-changed modify moves the order to the tail of the new level
// (time priority lost), matching the discipline of a freshly-arrived
// order.
func (ob *OrderBook) Modify(orderID uint64, newPrice int64, newQuantity uint64, newTimestamp uint64) bool {
	loc, exists := ob.index[orderID]
	if !exists {
		return false
	}

	ord := orderAt(loc.Elem)
	filled := ord.Filled()
	if newQuantity <= filled {
		return false
	}
	newRemaining := newQuantity - filled

	if newPrice == ord.Price {
		loc.Level.volume += newRemaining - ord.Remaining
		ord.Quantity = newQuantity
		ord.Remaining = newRemaining
		ord.Timestamp = newTimestamp
		loc.Timestamp = newTimestamp
		return true
	}

	side := loc.Side
	oldPrice := loc.Price
	oldLevel := loc.Level

	oldLevel.eraseOrder(loc.Elem)
	ob.removeLevelIfEmpty(side, oldPrice)

	moved := domain.Order{
		OrderID:   ord.OrderID,
		Symbol:    ord.Symbol,
		Side:      side,
		Price:     newPrice,
		Quantity:  newQuantity,
		Remaining: newRemaining,
		Timestamp: newTimestamp,
	}

	tree := ob.treeFor(side)
	newLevel, found := tree.Get(newPrice)
	if !found {
		newLevel = newPriceLevel(newPrice)
		tree.Put(newPrice, newLevel)
	}
	newElem := newLevel.addOrder(&moved)

	loc.Level = newLevel
	loc.Price = newPrice
	loc.Elem = newElem
	loc.Timestamp = newTimestamp
	return true
}

// BestBid returns the highest-priced bid level, or nil if bids are empty.
func (ob *OrderBook) BestBid() *PriceLevel {
	node := ob.bids.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

// BestAsk returns the lowest-priced ask level, or nil if asks are empty.
func (ob *OrderBook) BestAsk() *PriceLevel {
	node := ob.asks.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

// FindLevel returns the level at side/price, or nil if none exists.
func (ob *OrderBook) FindLevel(side domain.Side, price int64) *PriceLevel {
	level, found := ob.treeFor(side).Get(price)
	if !found {
		return nil
	}
	return level
}

// removeLevelIfEmpty drops the level at side/price if it has become
// empty. Idempotent: a no-op if the level doesn't exist or isn't empty.
func (ob *OrderBook) removeLevelIfEmpty(side domain.Side, price int64) {
	tree := ob.treeFor(side)
	level, found := tree.Get(price)
	if found && level.Empty() {
		tree.Remove(price)
	}
}

// RemoveLevelIfEmpty is the public form used by the matching engine,
// which holds a *PriceLevel directly and may not know if it just went
// empty from its own perspective only.
func (ob *OrderBook) RemoveLevelIfEmpty(side domain.Side, price int64) {
	ob.removeLevelIfEmpty(side, price)
}

