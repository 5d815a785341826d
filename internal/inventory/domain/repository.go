package inventory

import "context"

// Repository persists the single controller counter.
type Repository interface {
	// Get returns the counter, or ErrNotFound when the row is missing.
	Get(ctx context.Context) (*ControllerInventory, error)
	// Save writes the counter state.
	Save(ctx context.Context, counter *ControllerInventory) error
}
