package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	inventory "playcafe-cloud/internal/inventory/domain"
)

// Clock supplies the current time so counter updates are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// InventoryService maintains the shop's controller counter. A missing
// row is materialized on first read so a fresh database works without
// seeding.
type InventoryService struct {
	repo         inventory.Repository
	clock        Clock
	defaultTotal int
}

// NewInventoryService constructs the service. defaultTotal sizes the
// fleet when the counter has never been saved.
func NewInventoryService(repo inventory.Repository, clock Clock, defaultTotal int) (*InventoryService, error) {
	if repo == nil {
		return nil, errors.New("inventory service: nil repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if defaultTotal < 0 {
		return nil, inventory.ErrNegativeTotal
	}
	return &InventoryService{repo: repo, clock: clock, defaultTotal: defaultTotal}, nil
}

// Get returns the counter, creating it at the default fleet size when
// no row exists yet.
func (s *InventoryService) Get(ctx context.Context) (*inventory.ControllerInventory, error) {
	counter, err := s.repo.Get(ctx)
	if errors.Is(err, inventory.ErrNotFound) {
		counter, err = inventory.NewControllerInventory(s.defaultTotal, s.clock.Now())
		if err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, counter); err != nil {
			return nil, fmt.Errorf("seed counter: %w", err)
		}
		return counter, nil
	}
	if err != nil {
		return nil, err
	}
	return counter, nil
}

// SetOut records the checked-out count. Values outside [0, total] are
// clamped rather than rejected.
func (s *InventoryService) SetOut(ctx context.Context, out int) (*inventory.ControllerInventory, error) {
	counter, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	counter.SetOut(out, s.clock.Now())
	if err := s.repo.Save(ctx, counter); err != nil {
		return nil, err
	}
	return counter, nil
}

// Adjust shifts the checked-out count by delta, clamped the same way.
func (s *InventoryService) Adjust(ctx context.Context, delta int) (*inventory.ControllerInventory, error) {
	counter, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	counter.Adjust(delta, s.clock.Now())
	if err := s.repo.Save(ctx, counter); err != nil {
		return nil, err
	}
	return counter, nil
}

// SetTotal resizes the fleet and re-clamps the checked-out count.
func (s *InventoryService) SetTotal(ctx context.Context, total int) (*inventory.ControllerInventory, error) {
	counter, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := counter.SetTotal(total, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, counter); err != nil {
		return nil, err
	}
	return counter, nil
}
