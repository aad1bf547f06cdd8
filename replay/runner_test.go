package replay

import (
	"strings"
	"testing"
)

func TestRunMatchingLog(t *testing.T) {
	log := "" +
		"E 1 1 NEWORDER 1 S 50000 10 1\n" +
		"E 2 2 NEWORDER 2 B 50000 10 2\n" +
		"T 1 2 1 2 50000 10\n"

	result, err := run(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected a matching replay, got mismatches: %v", result.Mismatches)
	}
	if result.ExpectedCount != 1 || result.ProducedCount != 1 {
		t.Errorf("expected 1 expected and 1 produced trade, got %d/%d", result.ExpectedCount, result.ProducedCount)
	}
}

func TestRunDetectsTradeCountMismatch(t *testing.T) {
	log := "" +
		"E 1 1 NEWORDER 1 S 50000 10 1\n" +
		"T 1 2 1 2 50000 10\n" + // expects a trade that never happens: nothing crosses it
		"T 2 2 1 2 50000 10\n"

	result, err := run(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK {
		t.Fatal("expected a count mismatch to be detected")
	}
}

func TestRunDetectsFieldMismatch(t *testing.T) {
	log := "" +
		"E 1 1 NEWORDER 1 S 50000 10 1\n" +
		"E 2 2 NEWORDER 2 B 50000 10 2\n" +
		"T 1 2 1 2 50000 5\n" // wrong quantity

	result, err := run(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK {
		t.Fatal("expected a field mismatch to be detected")
	}
	if len(result.Mismatches) != 1 {
		t.Errorf("expected exactly 1 mismatch entry, got %d", len(result.Mismatches))
	}
}

func TestRunTreatsMalformedLinesAsWarnings(t *testing.T) {
	log := "" +
		"garbage line\n" +
		"E 1 1 NEWORDER 1 S 50000 10 1\n" +
		"E 2 2 NEWORDER 2 B 50000 10 2\n" +
		"T 1 2 1 2 50000 10\n"

	result, err := run(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected the malformed line to be skipped, not fatal: %v", result.Mismatches)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning for the malformed line, got %d", len(result.Warnings))
	}
}
