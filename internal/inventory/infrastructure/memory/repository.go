package memory

import (
	"context"
	"sync"

	inventory "playcafe-cloud/internal/inventory/domain"
)

// InventoryRepository keeps the controller counter in memory for tests
// and standalone runs.
type InventoryRepository struct {
	mu      sync.RWMutex
	counter *inventory.ControllerInventory
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) Get(ctx context.Context) (*inventory.ControllerInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.counter == nil {
		return nil, inventory.ErrNotFound
	}
	clone := *r.counter
	return &clone, nil
}

func (r *InventoryRepository) Save(ctx context.Context, counter *inventory.ControllerInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *counter
	r.counter = &clone
	return nil
}
