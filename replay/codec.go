// Package replay implements the textual event/trade log grammar used for
// audit and regression, and a runner that re-executes a logged event
// stream through a fresh core and verifies the produced trades against
// the logged ones.
//
// Grammar (whitespace-separated, base-10 integers, side as B/S):
//
//	E <event_id> <timestamp> NEWORDER <order_id> <B|S> <price> <quantity> <order_ts>
//	E <event_id> <timestamp> CANCEL <order_id>
//	E <event_id> <timestamp> MODIFY <order_id> <new_price> <new_quantity>
//	T <trade_id> <timestamp> <maker_id> <taker_id> <price> <quantity>
package replay

import (
	"fmt"
	"strconv"
	"strings"

	"elob/domain"
	"elob/ingest"
)

// RecordKind discriminates a decoded log line.
type RecordKind int

const (
	// RecordBlank marks a line that carries no record (blank or, by
	// convention with the CSV grammar, a comment) and should be skipped.
	RecordBlank RecordKind = iota
	RecordEvent
	RecordTrade
)

// Record is one decoded log line.
type Record struct {
	Kind  RecordKind
	Event ingest.Event // valid when Kind == RecordEvent
	Trade domain.Trade // valid when Kind == RecordTrade
}

// DecodeLine parses one line of the log grammar.
func DecodeLine(line string) (Record, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Record{Kind: RecordBlank}, nil
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case "E":
		return decodeEvent(fields)
	case "T":
		return decodeTrade(fields)
	default:
		return Record{}, fmt.Errorf("replay: unknown record tag %q", fields[0])
	}
}

func decodeEvent(fields []string) (Record, error) {
	if len(fields) < 4 {
		return Record{}, fmt.Errorf("replay: event line too short: %q", strings.Join(fields, " "))
	}
	eventID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad event_id: %w", err)
	}
	timestamp, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad timestamp: %w", err)
	}

	ev := ingest.Event{EventID: eventID, Timestamp: timestamp}

	switch fields[3] {
	case "NEWORDER":
		if len(fields) != 9 {
			return Record{}, fmt.Errorf("replay: NEWORDER wants 9 fields, got %d", len(fields))
		}
		orderID, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad order_id: %w", err)
		}
		side, err := decodeSide(fields[5])
		if err != nil {
			return Record{}, err
		}
		price, err := strconv.ParseInt(fields[6], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad price: %w", err)
		}
		quantity, err := strconv.ParseUint(fields[7], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad quantity: %w", err)
		}
		orderTS, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad order_ts: %w", err)
		}
		ev.Payload = ingest.NewOrderPayload{
			Order: domain.NewOrder(orderID, "", side, price, quantity, orderTS),
		}

	case "CANCEL":
		if len(fields) != 5 {
			return Record{}, fmt.Errorf("replay: CANCEL wants 5 fields, got %d", len(fields))
		}
		orderID, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad order_id: %w", err)
		}
		ev.Payload = ingest.CancelPayload{OrderID: orderID}

	case "MODIFY":
		if len(fields) != 7 {
			return Record{}, fmt.Errorf("replay: MODIFY wants 7 fields, got %d", len(fields))
		}
		orderID, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad order_id: %w", err)
		}
		newPrice, err := strconv.ParseInt(fields[5], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad new_price: %w", err)
		}
		newQuantity, err := strconv.ParseUint(fields[6], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("replay: bad new_quantity: %w", err)
		}
		ev.Payload = ingest.ModifyPayload{OrderID: orderID, NewPrice: newPrice, NewQuantity: newQuantity}

	default:
		return Record{}, fmt.Errorf("replay: unknown event type %q", fields[3])
	}

	return Record{Kind: RecordEvent, Event: ev}, nil
}

func decodeTrade(fields []string) (Record, error) {
	if len(fields) != 7 {
		return Record{}, fmt.Errorf("replay: trade line wants 7 fields, got %d", len(fields))
	}
	tradeID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad trade_id: %w", err)
	}
	timestamp, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad timestamp: %w", err)
	}
	makerID, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad maker_id: %w", err)
	}
	takerID, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad taker_id: %w", err)
	}
	price, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad price: %w", err)
	}
	quantity, err := strconv.ParseUint(fields[6], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("replay: bad quantity: %w", err)
	}

	return Record{
		Kind:  RecordTrade,
		Trade: domain.NewTrade(tradeID, "", makerID, takerID, price, quantity, timestamp, false),
	}, nil
}

func decodeSide(field string) (domain.Side, error) {
	switch field {
	case "B":
		return domain.SideBuy, nil
	case "S":
		return domain.SideSell, nil
	default:
		return 0, fmt.Errorf("replay: unknown side %q", field)
	}
}

// EncodeEvent renders ev back into the log grammar, for building fixtures
// or for a future event-logging collaborator.
func EncodeEvent(ev ingest.Event) (string, error) {
	switch p := ev.Payload.(type) {
	case ingest.NewOrderPayload:
		o := p.Order
		return fmt.Sprintf("E %d %d NEWORDER %d %s %d %d %d",
			ev.EventID, ev.Timestamp, o.OrderID, o.Side, o.Price, o.Quantity, o.Timestamp), nil
	case ingest.CancelPayload:
		return fmt.Sprintf("E %d %d CANCEL %d", ev.EventID, ev.Timestamp, p.OrderID), nil
	case ingest.ModifyPayload:
		return fmt.Sprintf("E %d %d MODIFY %d %d %d",
			ev.EventID, ev.Timestamp, p.OrderID, p.NewPrice, p.NewQuantity), nil
	default:
		return "", fmt.Errorf("replay: cannot encode event payload %T", ev.Payload)
	}
}

// EncodeTrade renders t back into the log grammar.
func EncodeTrade(t domain.Trade) string {
	return fmt.Sprintf("T %d %d %d %d %d %d",
		t.TradeID, t.Timestamp, t.MakerID, t.TakerID, t.Price, t.Quantity)
}
