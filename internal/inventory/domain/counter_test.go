package inventory

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

func TestNewControllerInventory(t *testing.T) {
	counter, err := NewControllerInventory(8, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter.Total != 8 || counter.Out != 0 {
		t.Fatalf("unexpected counter: %+v", counter)
	}
	if counter.InStock() != 8 {
		t.Fatalf("expected 8 in stock, got %d", counter.InStock())
	}

	if _, err := NewControllerInventory(-1, testNow); err != ErrNegativeTotal {
		t.Fatalf("expected ErrNegativeTotal, got %v", err)
	}
}

func TestSetOutClamps(t *testing.T) {
	counter, _ := NewControllerInventory(4, testNow)

	counter.SetOut(3, testNow)
	if counter.Out != 3 || counter.InStock() != 1 {
		t.Fatalf("unexpected state: %+v", counter)
	}

	counter.SetOut(10, testNow)
	if counter.Out != 4 {
		t.Fatalf("expected clamp to total, got %d", counter.Out)
	}

	counter.SetOut(-2, testNow)
	if counter.Out != 0 {
		t.Fatalf("expected clamp to zero, got %d", counter.Out)
	}
}

func TestAdjust(t *testing.T) {
	counter, _ := NewControllerInventory(4, testNow)

	counter.Adjust(2, testNow)
	counter.Adjust(1, testNow)
	if counter.Out != 3 {
		t.Fatalf("expected 3 out, got %d", counter.Out)
	}

	counter.Adjust(-5, testNow)
	if counter.Out != 0 {
		t.Fatalf("expected clamp to zero, got %d", counter.Out)
	}

	counter.Adjust(9, testNow)
	if counter.Out != 4 {
		t.Fatalf("expected clamp to total, got %d", counter.Out)
	}
}

func TestSetTotalReclamps(t *testing.T) {
	counter, _ := NewControllerInventory(6, testNow)
	counter.SetOut(5, testNow)

	if err := counter.SetTotal(3, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter.Out != 3 {
		t.Fatalf("expected out re-clamped to 3, got %d", counter.Out)
	}

	if err := counter.SetTotal(-1, testNow); err != ErrNegativeTotal {
		t.Fatalf("expected ErrNegativeTotal, got %v", err)
	}
}
