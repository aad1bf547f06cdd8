// Package csvsource turns the whitespace-trimmed, comma-separated event
// grammar of spec.md §6 into a stream of ingest.Event values.
//
// Two line shapes, discriminated by the first field:
//
//	<timestamp>,<order_id>,<BUY|SELL|B|S>,<price>,<quantity>   (5 fields, new order)
//	CANCEL,<order_id>                                          (2 fields)
//	MODIFY,<order_id>,<new_price>,<new_quantity>               (4 fields)
//
// Lines beginning with # and empty lines are skipped. A malformed line
// produces a warning and is dropped; it never aborts the load. Actions
// (CANCEL/MODIFY) get timestamp = 0, per spec.md §9's resolution of that
// open question — same-timestamp actions are still ordered unambiguously
// by arrival in the file.
//
// Grounded on original_source/src/utils/event_parser.hpp, translated
// from exception-based C++ parsing into Go's (value, error) idiom.
package csvsource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"elob/domain"
	"elob/ingest"
	"elob/metrics"
)

// Load reads path and returns the events it could parse plus one warning
// string per line it had to drop. A non-nil error means the file itself
// couldn't be opened or read (I/O failure) — the one condition spec.md
// treats as fatal for this collaborator.
func Load(path string, logger *zap.Logger, collector *metrics.Collector) ([]ingest.Event, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return load(f, logger, collector)
}

func load(r io.Reader, logger *zap.Logger, collector *metrics.Collector) ([]ingest.Event, []string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var events []ingest.Event
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := parseLine(line)
		if err != nil {
			warning := fmt.Sprintf("line %d: %v", lineNo, err)
			warnings = append(warnings, warning)
			logger.Warn("csvsource: dropping malformed line", zap.Int("line", lineNo), zap.Error(err))
			if collector != nil {
				collector.IncMalformed()
			}
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, err
	}

	return events, warnings, nil
}

func parseLine(line string) (ingest.Event, error) {
	fields := splitTrimmed(line)
	if len(fields) == 0 {
		return ingest.Event{}, fmt.Errorf("empty line")
	}

	switch fields[0] {
	case "CANCEL":
		return parseCancel(fields)
	case "MODIFY":
		return parseModify(fields)
	default:
		return parseNewOrder(fields)
	}
}

func parseNewOrder(fields []string) (ingest.Event, error) {
	if len(fields) != 5 {
		return ingest.Event{}, fmt.Errorf("new-order line must have 5 fields, got %d", len(fields))
	}

	timestamp, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad timestamp %q: %w", fields[0], err)
	}
	orderID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad order_id %q: %w", fields[1], err)
	}
	side, err := parseSide(fields[2])
	if err != nil {
		return ingest.Event{}, err
	}
	price, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad price %q: %w", fields[3], err)
	}
	quantity, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad quantity %q: %w", fields[4], err)
	}

	return ingest.Event{
		EventID:   orderID,
		Timestamp: timestamp,
		Payload: ingest.NewOrderPayload{
			Order: domain.NewOrder(orderID, "", side, price, quantity, timestamp),
		},
	}, nil
}

func parseCancel(fields []string) (ingest.Event, error) {
	if len(fields) != 2 {
		return ingest.Event{}, fmt.Errorf("CANCEL requires: CANCEL,order_id")
	}
	orderID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad order_id %q: %w", fields[1], err)
	}
	return ingest.Event{
		EventID:   orderID,
		Timestamp: 0,
		Payload:   ingest.CancelPayload{OrderID: orderID},
	}, nil
}

func parseModify(fields []string) (ingest.Event, error) {
	if len(fields) != 4 {
		return ingest.Event{}, fmt.Errorf("MODIFY requires: MODIFY,order_id,new_price,new_quantity")
	}
	orderID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad order_id %q: %w", fields[1], err)
	}
	newPrice, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad new_price %q: %w", fields[2], err)
	}
	newQuantity, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return ingest.Event{}, fmt.Errorf("bad new_quantity %q: %w", fields[3], err)
	}
	return ingest.Event{
		EventID:   orderID,
		Timestamp: 0,
		Payload: ingest.ModifyPayload{
			OrderID:     orderID,
			NewPrice:    newPrice,
			NewQuantity: newQuantity,
		},
	}, nil
}

func parseSide(field string) (domain.Side, error) {
	switch field {
	case "BUY", "B":
		return domain.SideBuy, nil
	case "SELL", "S":
		return domain.SideSell, nil
	default:
		return 0, fmt.Errorf("unknown side %q (must be BUY/B or SELL/S)", field)
	}
}

func splitTrimmed(line string) []string {
	raw := strings.Split(line, ",")
	fields := make([]string, len(raw))
	for i, f := range raw {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
