package postgres

import (
	"context"
	"database/sql"
	"errors"

	inventory "playcafe-cloud/internal/inventory/domain"
)

// counterRow pins the single counter row shared by the shop.
const counterRow = 1

// InventoryRepository persists the controller counter in PostgreSQL.
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository constructs a repository.
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Get loads the counter row.
func (r *InventoryRepository) Get(ctx context.Context) (*inventory.ControllerInventory, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("inventory repo: nil db")
	}
	var counter inventory.ControllerInventory
	err := r.db.QueryRowContext(ctx, `
SELECT total, out, updated_at
FROM controllers_inventory
WHERE id = $1`, counterRow).Scan(&counter.Total, &counter.Out, &counter.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventory.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	counter.UpdatedAt = counter.UpdatedAt.UTC()
	return &counter, nil
}

// Save upserts the counter row.
func (r *InventoryRepository) Save(ctx context.Context, counter *inventory.ControllerInventory) error {
	if r == nil || r.db == nil {
		return errors.New("inventory repo: nil db")
	}
	if counter == nil {
		return errors.New("inventory repo: nil counter")
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO controllers_inventory (id, total, out, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET total = EXCLUDED.total, out = EXCLUDED.out, updated_at = EXCLUDED.updated_at`,
		counterRow, counter.Total, counter.Out, counter.UpdatedAt)
	return err
}
