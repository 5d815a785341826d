package reporting

import (
	"fmt"
	"math"

	session "playcafe-cloud/internal/session/domain"
)

// ConsoleReport accumulates totals for one console inside a window.
type ConsoleReport struct {
	SessionCount       int
	TotalDurationHours float64
	TotalPrice         float64
}

// SettlementReport is the aggregate over a window, grouped by console
// with grand totals across all consoles. Computed, never stored.
type SettlementReport struct {
	Period                 Period
	Window                 Window
	Consoles               map[string]ConsoleReport
	GrandTotalSessionCount int
	GrandTotalDuration     float64
	GrandTotalPrice        float64
}

// BuildSettlementReport aggregates completed sessions whose creation
// timestamp falls inside the inclusive window. Running sessions are
// invisible here; totals carry full precision and rounding is left to
// presentation.
func BuildSettlementReport(period Period, window Window, sessions []session.Session) *SettlementReport {
	report := &SettlementReport{
		Period:   period,
		Window:   window,
		Consoles: make(map[string]ConsoleReport),
	}
	for _, s := range sessions {
		if s.Status != session.StatusCompleted {
			continue
		}
		if s.ConsoleName == "" || !window.Contains(s.CreatedAt) {
			continue
		}
		console := report.Consoles[s.ConsoleName]
		console.SessionCount++
		console.TotalDurationHours += s.DurationHours
		console.TotalPrice += s.Price
		report.Consoles[s.ConsoleName] = console

		report.GrandTotalSessionCount++
		report.GrandTotalDuration += s.DurationHours
		report.GrandTotalPrice += s.Price
	}
	return report
}

// FormatHours renders a duration in hours as "HHh MMm" for display.
func FormatHours(hours float64) string {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	return fmt.Sprintf("%02dh %02dm", whole, minutes)
}
