package reporting

import (
	"testing"
	"time"

	session "playcafe-cloud/internal/session/domain"
)

func completed(console string, createdAt time.Time, hours, price float64) session.Session {
	return session.Session{
		ID:            console + "-" + createdAt.Format("150405"),
		ConsoleName:   console,
		StartTime:     createdAt,
		EndTime:       createdAt.Add(time.Duration(hours * float64(time.Hour))),
		DurationHours: hours,
		Price:         price,
		Status:        session.StatusCompleted,
		CreatedAt:     createdAt,
	}
}

func TestBuildSettlementReportTotals(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	window := WindowFor(PeriodDaily, now)

	sessions := []session.Session{
		completed("PS4", now.Add(-2*time.Hour), 1, 25),
		completed("PS4", now.Add(-1*time.Hour), 1.5, 40),
		completed("PS3", now, 0.5, 15),
		// Outside the daily window.
		completed("PS4", now.AddDate(0, 0, -1), 3, 75),
		// Running sessions never appear in reports.
		{ID: "r-1", ConsoleName: "PS2", StartTime: now, Status: session.StatusRunning, CreatedAt: now},
	}

	report := BuildSettlementReport(PeriodDaily, window, sessions)
	if report.GrandTotalSessionCount != 3 {
		t.Fatalf("grand count = %d, want 3", report.GrandTotalSessionCount)
	}
	if report.GrandTotalDuration != 3 {
		t.Fatalf("grand duration = %v, want 3", report.GrandTotalDuration)
	}
	if report.GrandTotalPrice != 80 {
		t.Fatalf("grand price = %v, want 80", report.GrandTotalPrice)
	}

	ps4 := report.Consoles["PS4"]
	if ps4.SessionCount != 2 || ps4.TotalDurationHours != 2.5 || ps4.TotalPrice != 65 {
		t.Fatalf("PS4 totals = %+v", ps4)
	}
	ps3 := report.Consoles["PS3"]
	if ps3.SessionCount != 1 || ps3.TotalPrice != 15 {
		t.Fatalf("PS3 totals = %+v", ps3)
	}
	if _, ok := report.Consoles["PS2"]; ok {
		t.Fatal("running session leaked into report")
	}
}

func TestGrandTotalsEqualConsoleSums(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	window := WindowFor(PeriodWeekly, now)

	sessions := []session.Session{
		completed("PS4", now, 1, 25),
		completed("PS3", now.AddDate(0, 0, -2), 2, 50),
		completed("PS2", now.AddDate(0, 0, 2), 0.25, 10),
		completed("PS1", now.AddDate(0, 0, 10), 4, 100), // next week, excluded
	}

	report := BuildSettlementReport(PeriodWeekly, window, sessions)

	var count int
	var duration, price float64
	for _, console := range report.Consoles {
		count += console.SessionCount
		duration += console.TotalDurationHours
		price += console.TotalPrice
	}
	if count != report.GrandTotalSessionCount {
		t.Fatalf("count: consoles %d vs grand %d", count, report.GrandTotalSessionCount)
	}
	if duration != report.GrandTotalDuration {
		t.Fatalf("duration: consoles %v vs grand %v", duration, report.GrandTotalDuration)
	}
	if price != report.GrandTotalPrice {
		t.Fatalf("price: consoles %v vs grand %v", price, report.GrandTotalPrice)
	}
	if _, ok := report.Consoles["PS1"]; ok {
		t.Fatal("session outside the window was aggregated")
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "00h 00m"},
		{0.5, "00h 30m"},
		{1.0166666666666666, "01h 01m"},
		{2.999999, "03h 00m"},
		{12.25, "12h 15m"},
	}
	for _, tc := range cases {
		if got := FormatHours(tc.hours); got != tc.want {
			t.Fatalf("FormatHours(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}
