package replay

import (
	"testing"

	"elob/domain"
	"elob/ingest"
)

func TestDecodeLineBlank(t *testing.T) {
	rec, err := DecodeLine("   ")
	if err != nil {
		t.Fatalf("unexpected error on blank line: %v", err)
	}
	if rec.Kind != RecordBlank {
		t.Errorf("expected RecordBlank, got %v", rec.Kind)
	}
}

func TestDecodeNewOrderEvent(t *testing.T) {
	rec, err := DecodeLine("E 1 100 NEWORDER 42 B 50000 10 100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != RecordEvent {
		t.Fatalf("expected RecordEvent, got %v", rec.Kind)
	}
	p, ok := rec.Event.Payload.(ingest.NewOrderPayload)
	if !ok {
		t.Fatalf("expected NewOrderPayload, got %T", rec.Event.Payload)
	}
	if p.Order.OrderID != 42 || p.Order.Side != domain.SideBuy || p.Order.Price != 50000 || p.Order.Quantity != 10 {
		t.Errorf("unexpected decoded order: %+v", p.Order)
	}
}

func TestDecodeCancelEvent(t *testing.T) {
	rec, err := DecodeLine("E 2 0 CANCEL 42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := rec.Event.Payload.(ingest.CancelPayload)
	if !ok || p.OrderID != 42 {
		t.Fatalf("unexpected decoded payload: %+v", rec.Event.Payload)
	}
}

func TestDecodeModifyEvent(t *testing.T) {
	rec, err := DecodeLine("E 3 0 MODIFY 42 50500 20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := rec.Event.Payload.(ingest.ModifyPayload)
	if !ok || p.OrderID != 42 || p.NewPrice != 50500 || p.NewQuantity != 20 {
		t.Fatalf("unexpected decoded payload: %+v", rec.Event.Payload)
	}
}

func TestDecodeTrade(t *testing.T) {
	rec, err := DecodeLine("T 1 100 1 2 50000 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != RecordTrade {
		t.Fatalf("expected RecordTrade, got %v", rec.Kind)
	}
	tr := rec.Trade
	if tr.TradeID != 1 || tr.MakerID != 1 || tr.TakerID != 2 || tr.Price != 50000 || tr.Quantity != 10 {
		t.Errorf("unexpected decoded trade: %+v", tr)
	}
}

func TestDecodeUnknownTagErrors(t *testing.T) {
	if _, err := DecodeLine("X 1 2 3"); err == nil {
		t.Error("expected an unknown record tag to error")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ev := ingest.Event{
		EventID: 7, Timestamp: 99,
		Payload: ingest.NewOrderPayload{Order: domain.NewOrder(5, "BTCUSDT", domain.SideSell, 51000, 3, 99)},
	}
	line, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	rec, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	p, ok := rec.Event.Payload.(ingest.NewOrderPayload)
	if !ok {
		t.Fatalf("expected NewOrderPayload after round trip, got %T", rec.Event.Payload)
	}
	if p.Order.OrderID != 5 || p.Order.Price != 51000 || p.Order.Quantity != 3 {
		t.Errorf("round trip changed the order: %+v", p.Order)
	}
}

func TestEncodeTradeDecodesBack(t *testing.T) {
	tr := domain.NewTrade(9, "BTCUSDT", 1, 2, 50000, 5, 10, true)
	line := EncodeTrade(tr)

	rec, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if rec.Trade.TradeID != 9 || rec.Trade.MakerID != 1 || rec.Trade.TakerID != 2 {
		t.Errorf("unexpected round-tripped trade: %+v", rec.Trade)
	}
}
