package csvsource

import (
	"strings"
	"testing"

	"elob/domain"
	"elob/ingest"
)

func TestLoadParsesNewOrderCancelModify(t *testing.T) {
	csv := "" +
		"# comment line, ignored\n" +
		"1,1,BUY,50000,10\n" +
		"2,2,SELL,50001,5\n" +
		"\n" +
		"CANCEL,1\n" +
		"MODIFY,2,50002,7\n"

	events, warnings, err := load(strings.NewReader(csv), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	if _, ok := events[0].Payload.(ingest.NewOrderPayload); !ok {
		t.Errorf("expected event 0 to be a new order, got %T", events[0].Payload)
	}
	cancel, ok := events[2].Payload.(ingest.CancelPayload)
	if !ok || cancel.OrderID != 1 {
		t.Errorf("expected a cancel of order 1, got %+v", events[2].Payload)
	}
	modify, ok := events[3].Payload.(ingest.ModifyPayload)
	if !ok || modify.OrderID != 2 || modify.NewPrice != 50002 || modify.NewQuantity != 7 {
		t.Errorf("unexpected modify payload: %+v", events[3].Payload)
	}
}

func TestLoadToleratesMalformedLines(t *testing.T) {
	csv := "" +
		"1,1,BUY,50000,10\n" +
		"not,a,valid,line,at,all,here\n" +
		"2,2,SELL,WRONGSIDE,5\n" +
		"3,3,SELL,50001,5\n"

	events, warnings, err := load(strings.NewReader(csv), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 well-formed events to survive, got %d", len(events))
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings for the 2 bad lines, got %d", len(warnings))
	}
}

func TestParseSideAcceptsBothSpellings(t *testing.T) {
	cases := map[string]domain.Side{"BUY": domain.SideBuy, "B": domain.SideBuy, "SELL": domain.SideSell, "S": domain.SideSell}
	for field, want := range cases {
		got, err := parseSide(field)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", field, err)
		}
		if got != want {
			t.Errorf("parseSide(%q) = %v, want %v", field, got, want)
		}
	}
	if _, err := parseSide("HOLD"); err == nil {
		t.Error("expected an unknown side to error")
	}
}
