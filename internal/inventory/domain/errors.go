package inventory

import "errors"

var (
	// ErrNegativeTotal is returned when the fleet size is below zero.
	ErrNegativeTotal = errors.New("inventory: total must not be negative")
	// ErrNotFound is returned when the counter row is missing.
	ErrNotFound = errors.New("inventory: counter not found")
)
