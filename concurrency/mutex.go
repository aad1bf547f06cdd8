// Package concurrency holds the two transport wrappers spec.md §5
// describes: a process-wide mutex and a single-producer/single-consumer
// ring buffer. Neither adds semantic guarantees beyond FIFO delivery
// within the instance; the core (orderbook/matching/ingest) stays
// single-threaded and blocking-free regardless of which wrapper fronts
// it. Callers who need a deterministic trade stream across producers
// must still serialize the events they hand in.
package concurrency

import (
	"sync"

	"go.uber.org/zap"

	"elob/domain"
	"elob/ingest"
)

// MutexCore takes a process-wide lock for the duration of each
// ProcessEvent call. Clients calling it from multiple goroutines get
// at-most-one concurrent ingest, but the resulting trade sequence is a
// function of the arrival interleaving those goroutines produced.
type MutexCore struct {
	ingestor *ingest.Ingestor
	logger   *zap.Logger
}

// processMu is the process-wide lock every MutexCore takes.
var processMu sync.Mutex

// NewMutexCore wraps ingestor behind a mutex. logger may be nil.
func NewMutexCore(ingestor *ingest.Ingestor, logger *zap.Logger) *MutexCore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutexCore{ingestor: ingestor, logger: logger}
}

// ProcessEvent processes ev under the wrapper's lock.
func (m *MutexCore) ProcessEvent(ev ingest.Event) []domain.Trade {
	processMu.Lock()
	defer processMu.Unlock()
	trades := m.ingestor.Process(ev)
	m.logger.Debug("concurrency: processed event under mutex",
		zap.Uint64("event_id", ev.EventID), zap.Int("trades", len(trades)))
	return trades
}
