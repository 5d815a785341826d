package pricing

import "errors"

var (
	// ErrEmptyTariff is returned when a tariff table has no tiers.
	ErrEmptyTariff = errors.New("pricing: empty tariff table")
	// ErrNegativePrice is returned when a tier price is negative.
	ErrNegativePrice = errors.New("pricing: negative tier price")
	// ErrInvalidTierRange is returned when a tier minute range is malformed.
	ErrInvalidTierRange = errors.New("pricing: invalid tier minute range")
	// ErrInvalidConsume is returned when a tier consumes no minutes.
	ErrInvalidConsume = errors.New("pricing: tier must consume minutes")
	// ErrNegativeGrace is returned when the grace period is negative.
	ErrNegativeGrace = errors.New("pricing: negative grace period")
)
