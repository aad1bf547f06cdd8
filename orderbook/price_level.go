package orderbook

import (
	"container/list"

	"elob/domain"
)

// PriceLevel holds every resting order at one price, in strict arrival
// (FIFO) order. It is created lazily on first insert at that price and
// destroyed once its sequence empties.
//
// The backing container/list gives O(1) tail-append, O(1) erase by
// element handle, and safe erase-while-iterating (the three properties
// spec.md demands of the in-level position handle).
type PriceLevel struct {
	price  int64
	orders *list.List
	volume uint64
}

func newPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{price: price, orders: list.New()}
}

// Price returns the level's price.
func (pl *PriceLevel) Price() int64 { return pl.price }

// Empty reports whether the level has no resident orders.
func (pl *PriceLevel) Empty() bool { return pl.orders.Len() == 0 }

// Len returns the number of resident orders.
func (pl *PriceLevel) Len() int { return pl.orders.Len() }

// TotalQuantity sums Remaining over every resident order.
func (pl *PriceLevel) TotalQuantity() uint64 { return pl.volume }

// Front returns the head element (oldest order), or nil if empty.
func (pl *PriceLevel) Front() *list.Element { return pl.orders.Front() }

// addOrder appends o to the tail and returns its stable handle.
func (pl *PriceLevel) addOrder(o *domain.Order) *list.Element {
	elem := pl.orders.PushBack(o)
	pl.volume += o.Remaining
	return elem
}

// eraseOrder removes the order at handle elem in O(1).
func (pl *PriceLevel) eraseOrder(elem *list.Element) {
	o := elem.Value.(*domain.Order)
	pl.volume -= o.Remaining
	pl.orders.Remove(elem)
}

// FillOrder fills the order at handle elem by up to n and keeps the
// level's cached volume in step with the order's new Remaining. The
// matching engine must route every maker fill through this method
// rather than calling Order.Fill directly, or the cache goes stale.
func (pl *PriceLevel) FillOrder(elem *list.Element, n uint64) uint64 {
	o := elem.Value.(*domain.Order)
	taken := o.Fill(n)
	pl.volume -= taken
	return taken
}

// OrderAt returns the order stored at handle elem. Exported so the
// matching engine can read (and mutate, via the returned pointer) a
// maker without going through the book's index.
func OrderAt(elem *list.Element) *domain.Order {
	return elem.Value.(*domain.Order)
}

func orderAt(elem *list.Element) *domain.Order {
	return OrderAt(elem)
}
