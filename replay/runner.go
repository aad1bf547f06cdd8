package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"elob/domain"
	"elob/ingest"
	"elob/matching"
	"elob/orderbook"
)

// Result is the outcome of running a logged event stream against a
// fresh core and comparing the produced trades to the logged ones.
type Result struct {
	OK            bool
	ExpectedCount int
	ProducedCount int
	Mismatches    []string
	Warnings      []string
}

// Run reads path, replays every E record through a fresh OrderBook +
// MatchingEngine + Ingestor, and compares the produced trades against
// every T record. Match criteria: equal count and, per index, equal
// (maker_id, taker_id, price, quantity); timestamp and trade_id are not
// compared. logger may be nil; every warning and mismatch is also
// logged through it as it's discovered, matching the ambient logging
// convention csvsource.Load follows at its own boundary.
func Run(path string, logger *zap.Logger) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return run(f, logger)
}

func run(r io.Reader, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	book := orderbook.New()
	engine := matching.New("REPLAY", book)
	ingestor := ingest.New(book, engine)

	var expected []domain.Trade
	var produced []domain.Trade
	var result Result

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		rec, err := DecodeLine(scanner.Text())
		if err != nil {
			warning := fmt.Sprintf("line %d: %v", lineNo, err)
			result.Warnings = append(result.Warnings, warning)
			logger.Warn("replay: dropping undecodable line", zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		switch rec.Kind {
		case RecordEvent:
			produced = append(produced, ingestor.Process(rec.Event)...)
		case RecordTrade:
			expected = append(expected, rec.Trade)
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, err
	}

	result.ExpectedCount = len(expected)
	result.ProducedCount = len(produced)

	if len(expected) != len(produced) {
		mismatch := fmt.Sprintf("trade count mismatch: expected %d, produced %d", len(expected), len(produced))
		result.Mismatches = append(result.Mismatches, mismatch)
		logger.Warn("replay: trade count mismatch", zap.Int("expected", len(expected)), zap.Int("produced", len(produced)))
		return result, nil
	}

	for i := range expected {
		e, p := expected[i], produced[i]
		if e.MakerID != p.MakerID || e.TakerID != p.TakerID || e.Price != p.Price || e.Quantity != p.Quantity {
			mismatch := fmt.Sprintf(
				"trade %d: expected (maker=%d taker=%d price=%d qty=%d), got (maker=%d taker=%d price=%d qty=%d)",
				i, e.MakerID, e.TakerID, e.Price, e.Quantity, p.MakerID, p.TakerID, p.Price, p.Quantity)
			result.Mismatches = append(result.Mismatches, mismatch)
			logger.Warn("replay: trade mismatch", zap.Int("index", i),
				zap.Uint64("expected_maker", e.MakerID), zap.Uint64("got_maker", p.MakerID),
				zap.Uint64("expected_taker", e.TakerID), zap.Uint64("got_taker", p.TakerID),
				zap.Int64("expected_price", e.Price), zap.Int64("got_price", p.Price),
				zap.Uint64("expected_qty", e.Quantity), zap.Uint64("got_qty", p.Quantity))
		}
	}

	result.OK = len(result.Mismatches) == 0
	return result, nil
}
