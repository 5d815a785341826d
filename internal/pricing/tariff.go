package pricing

import "math"

// Tier is one ordered rule in a tariff table. A tier fires when the
// remaining whole minutes fall inside [MinMinutes, MaxMinutes]; a
// MaxMinutes of zero means unbounded. Repeat tiers fire greedily while
// the remainder still meets MinMinutes. Each firing adds Price and
// consumes ConsumeMinutes from the remainder.
type Tier struct {
	MinMinutes     int
	MaxMinutes     int
	Price          float64
	ConsumeMinutes int
	Repeat         bool
}

// TariffTable converts an elapsed duration into a price by walking its
// tiers in order. Minutes below GraceMinutes are free, and any
// remainder no tier matches is discarded unpriced. The table is data on
// purpose: gap bands that earn nothing (e.g. a remainder of 16-19 or
// 31-39 minutes under the default table) are visible here rather than
// buried in control flow.
type TariffTable struct {
	Currency     string
	GraceMinutes int
	Tiers        []Tier
}

// DefaultTariffTable returns the house tariff: sessions under 10
// minutes are free, each near-full hour costs 25, a half-hour remainder
// costs 15 and a quarter-hour remainder costs 10.
func DefaultTariffTable() TariffTable {
	return TariffTable{
		Currency:     "EGP",
		GraceMinutes: 10,
		Tiers: []Tier{
			{MinMinutes: 40, Price: 25, ConsumeMinutes: 60, Repeat: true},
			{MinMinutes: 20, MaxMinutes: 30, Price: 15, ConsumeMinutes: 30},
			{MinMinutes: 10, MaxMinutes: 15, Price: 10, ConsumeMinutes: 15},
		},
	}
}

// Validate checks the table is usable.
func (t TariffTable) Validate() error {
	if len(t.Tiers) == 0 {
		return ErrEmptyTariff
	}
	if t.GraceMinutes < 0 {
		return ErrNegativeGrace
	}
	for _, tier := range t.Tiers {
		if tier.Price < 0 {
			return ErrNegativePrice
		}
		if tier.MinMinutes < 0 || (tier.MaxMinutes != 0 && tier.MaxMinutes < tier.MinMinutes) {
			return ErrInvalidTierRange
		}
		if tier.ConsumeMinutes <= 0 {
			return ErrInvalidConsume
		}
	}
	return nil
}

// PriceForHours prices an elapsed duration expressed in hours. The
// duration is rounded to whole minutes first. Deterministic, no side
// effects; always non-negative for non-negative input.
//
// The remainder may go negative inside a repeat tier (a 100 minute
// session consumes two 60 minute blocks); later tiers simply never
// match a negative remainder.
func (t TariffTable) PriceForHours(hours float64) float64 {
	minutes := int(math.Round(hours * 60))
	if minutes < t.GraceMinutes {
		return 0
	}

	price := 0.0
	left := minutes
	for _, tier := range t.Tiers {
		if tier.Repeat {
			for left >= tier.MinMinutes {
				price += tier.Price
				left -= tier.ConsumeMinutes
			}
			continue
		}
		if left >= tier.MinMinutes && (tier.MaxMinutes == 0 || left <= tier.MaxMinutes) {
			price += tier.Price
			left -= tier.ConsumeMinutes
		}
	}
	return price
}
