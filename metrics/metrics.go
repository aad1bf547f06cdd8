// Package metrics is the aggregate-counter collaborator spec.md treats as
// external to the core: a small set of Prometheus counters the CSV and
// Kafka event sources update as a side channel. Nothing in orderbook,
// matching or ingest imports this package — it is never consulted for
// correctness, only observed from outside.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the counters for one exchange process.
type Collector struct {
	registry *prometheus.Registry

	ordersIngested prometheus.Counter
	tradesExecuted prometheus.Counter
	cancels        prometheus.Counter
	modifies       prometheus.Counter
	malformedLines prometheus.Counter
}

// New builds a Collector registered against its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ordersIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elob_orders_ingested_total",
			Help: "New orders processed by the ingestor.",
		}),
		tradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elob_trades_executed_total",
			Help: "Trades produced by the matching engine.",
		}),
		cancels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elob_cancels_total",
			Help: "Cancel events processed by the ingestor.",
		}),
		modifies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elob_modifies_total",
			Help: "Modify events processed by the ingestor.",
		}),
		malformedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elob_malformed_lines_total",
			Help: "CSV lines dropped for failing to parse.",
		}),
	}

	c.registry.MustRegister(
		c.ordersIngested, c.tradesExecuted, c.cancels, c.modifies, c.malformedLines,
	)
	return c
}

// Registry exposes the underlying Prometheus registry for scraping.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) IncOrders()    { c.ordersIngested.Inc() }
func (c *Collector) IncTrades(n int) {
	if n > 0 {
		c.tradesExecuted.Add(float64(n))
	}
}
func (c *Collector) IncCancels()   { c.cancels.Inc() }
func (c *Collector) IncModifies()  { c.modifies.Inc() }
func (c *Collector) IncMalformed() { c.malformedLines.Inc() }

// Observe updates the counters appropriate to one ingested event given
// the number of trades it produced and the event's own payload. Callers
// that already branch on payload kind (e.g. a CLI loop) can call the
// more specific Inc* methods directly instead.
func Observe(c *Collector, isNewOrder, isCancel, isModify bool, tradeCount int) {
	if c == nil {
		return
	}
	switch {
	case isNewOrder:
		c.IncOrders()
	case isCancel:
		c.IncCancels()
	case isModify:
		c.IncModifies()
	}
	c.IncTrades(tradeCount)
}
