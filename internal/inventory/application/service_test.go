package application

import (
	"context"
	"testing"
	"time"

	inventory "playcafe-cloud/internal/inventory/domain"
	"playcafe-cloud/internal/inventory/infrastructure/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, defaultTotal int) *InventoryService {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)}
	service, err := NewInventoryService(memory.NewInventoryRepository(), clock, defaultTotal)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestGetSeedsDefaultCounter(t *testing.T) {
	service := newTestService(t, 8)
	ctx := context.Background()

	counter, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if counter.Total != 8 || counter.Out != 0 {
		t.Fatalf("unexpected seeded counter: %+v", counter)
	}

	// Second read must hit the saved row, not re-seed.
	again, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.Total != 8 {
		t.Fatalf("unexpected counter on reread: %+v", again)
	}
}

func TestSetOutPersistsAndClamps(t *testing.T) {
	service := newTestService(t, 4)
	ctx := context.Background()

	counter, err := service.SetOut(ctx, 3)
	if err != nil {
		t.Fatalf("set out: %v", err)
	}
	if counter.Out != 3 || counter.InStock() != 1 {
		t.Fatalf("unexpected counter: %+v", counter)
	}

	counter, err = service.SetOut(ctx, 99)
	if err != nil {
		t.Fatalf("set out over total: %v", err)
	}
	if counter.Out != 4 {
		t.Fatalf("expected clamp to total, got %d", counter.Out)
	}

	reread, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.Out != 4 {
		t.Fatalf("expected persisted out 4, got %d", reread.Out)
	}
}

func TestAdjustAccumulates(t *testing.T) {
	service := newTestService(t, 6)
	ctx := context.Background()

	if _, err := service.Adjust(ctx, 2); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	counter, err := service.Adjust(ctx, 3)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if counter.Out != 5 {
		t.Fatalf("expected 5 out, got %d", counter.Out)
	}

	counter, err = service.Adjust(ctx, -10)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if counter.Out != 0 {
		t.Fatalf("expected clamp to zero, got %d", counter.Out)
	}
}

func TestSetTotalReclamps(t *testing.T) {
	service := newTestService(t, 6)
	ctx := context.Background()

	if _, err := service.SetOut(ctx, 5); err != nil {
		t.Fatalf("set out: %v", err)
	}
	counter, err := service.SetTotal(ctx, 2)
	if err != nil {
		t.Fatalf("set total: %v", err)
	}
	if counter.Total != 2 || counter.Out != 2 {
		t.Fatalf("unexpected counter after resize: %+v", counter)
	}

	if _, err := service.SetTotal(ctx, -1); err != inventory.ErrNegativeTotal {
		t.Fatalf("expected ErrNegativeTotal, got %v", err)
	}
}
