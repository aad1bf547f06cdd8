package concurrency

import "testing"

func TestSPSCQueuePushPopOrder(t *testing.T) {
	q := NewSPSCQueue[int](4)
	for i := 1; i <= 3; i++ {
		if !q.TryPush(i) {
			t.Fatalf("expected push of %d to succeed", i)
		}
	}

	for i := 1; i <= 3; i++ {
		got, ok := q.TryPop()
		if !ok || got != i {
			t.Fatalf("expected to pop %d, got %d (ok=%v)", i, got, ok)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("expected pop from an empty queue to fail")
	}
}

func TestSPSCQueueDropsOnFull(t *testing.T) {
	q := NewSPSCQueue[int](2)
	if !q.TryPush(1) || !q.TryPush(2) {
		t.Fatal("expected both pushes to fit within capacity 2")
	}
	if q.TryPush(3) {
		t.Error("expected a push past capacity to be dropped")
	}
	if q.Len() != 2 {
		t.Errorf("expected length 2, got %d", q.Len())
	}
}

func TestSPSCQueueWrapsAroundAfterDrain(t *testing.T) {
	q := NewSPSCQueue[int](2)
	q.TryPush(1)
	q.TryPush(2)
	q.TryPop()
	if !q.TryPush(3) {
		t.Fatal("expected a slot to free up after popping")
	}
	got, _ := q.TryPop()
	if got != 2 {
		t.Errorf("expected to pop 2 next, got %d", got)
	}
	got, _ = q.TryPop()
	if got != 3 {
		t.Errorf("expected to pop 3 last, got %d", got)
	}
}

func TestNewSPSCQueuePanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a non-power-of-two capacity to panic")
		}
	}()
	NewSPSCQueue[int](3)
}
