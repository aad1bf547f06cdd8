package kafkasource

import (
	"testing"

	"elob/domain"
	"elob/ingest"
)

func TestDecodeNewOrder(t *testing.T) {
	raw := []byte(`{"event_id":1,"timestamp":2,"kind":"NEW_ORDER","order_id":5,"symbol":"BTCUSDT","side":"BUY","price":50000,"quantity":10}`)

	ev, err := decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, ok := ev.Payload.(ingest.NewOrderPayload)
	if !ok {
		t.Fatalf("expected a NewOrderPayload, got %T", ev.Payload)
	}
	if payload.Order.OrderID != 5 || payload.Order.Side != domain.SideBuy || payload.Order.Price != 50000 {
		t.Errorf("unexpected decoded order: %+v", payload.Order)
	}
}

func TestDecodeCancel(t *testing.T) {
	raw := []byte(`{"event_id":2,"timestamp":3,"kind":"CANCEL","order_id":5}`)

	ev, err := decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel, ok := ev.Payload.(ingest.CancelPayload)
	if !ok || cancel.OrderID != 5 {
		t.Errorf("expected a cancel of order 5, got %+v", ev.Payload)
	}
}

func TestDecodeModify(t *testing.T) {
	raw := []byte(`{"event_id":3,"timestamp":4,"kind":"MODIFY","order_id":5,"new_price":50100,"new_quantity":8}`)

	ev, err := decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	modify, ok := ev.Payload.(ingest.ModifyPayload)
	if !ok || modify.OrderID != 5 || modify.NewPrice != 50100 || modify.NewQuantity != 8 {
		t.Errorf("unexpected modify payload: %+v", ev.Payload)
	}
}

func TestDecodeUnknownKindErrors(t *testing.T) {
	raw := []byte(`{"event_id":4,"timestamp":5,"kind":"BOGUS"}`)

	if _, err := decode(raw); err == nil {
		t.Error("expected an unknown event kind to error")
	}
}

func TestDecodeMalformedJSONErrors(t *testing.T) {
	if _, err := decode([]byte(`not json`)); err == nil {
		t.Error("expected malformed JSON to error")
	}
}
