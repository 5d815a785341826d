package inventory

import "time"

// ControllerInventory tracks how many controllers are checked out to
// customers against the total fleet. A single counter covers the shop.
type ControllerInventory struct {
	Total     int
	Out       int
	UpdatedAt time.Time
}

// NewControllerInventory builds a counter with nothing checked out.
func NewControllerInventory(total int, now time.Time) (*ControllerInventory, error) {
	if total < 0 {
		return nil, ErrNegativeTotal
	}
	return &ControllerInventory{Total: total, Out: 0, UpdatedAt: now}, nil
}

// SetOut records a new checked-out count, clamped to [0, Total].
// Over-asking saturates instead of failing so a rushed cashier never
// gets stuck on a counter update.
func (c *ControllerInventory) SetOut(out int, now time.Time) {
	if out < 0 {
		out = 0
	}
	if out > c.Total {
		out = c.Total
	}
	c.Out = out
	c.UpdatedAt = now
}

// Adjust shifts the checked-out count by delta, clamped to [0, Total].
func (c *ControllerInventory) Adjust(delta int, now time.Time) {
	c.SetOut(c.Out+delta, now)
}

// SetTotal resizes the fleet. The checked-out count is re-clamped so
// the counter never reports more out than exists.
func (c *ControllerInventory) SetTotal(total int, now time.Time) error {
	if total < 0 {
		return ErrNegativeTotal
	}
	c.Total = total
	c.SetOut(c.Out, now)
	return nil
}

// InStock reports how many controllers remain behind the counter.
func (c *ControllerInventory) InStock() int {
	return c.Total - c.Out
}
