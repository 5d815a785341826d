package interfaces

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	reporting "playcafe-cloud/internal/reporting/domain"
	session "playcafe-cloud/internal/session/domain"
)

// BuildReportPDF renders a settlement report with one table per
// console and a grand-total block.
func BuildReportPDF(report *reporting.SettlementReport, sessions []session.Session, currency string, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pdf.Cell(0, 8, "PlayStation Sessions Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", report.Period))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Window: %s - %s",
		report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	byConsole := groupByConsole(sessions)
	for _, consoleName := range sortedConsoles(byConsole) {
		consoleSessions := byConsole[consoleName]
		totals := report.Consoles[consoleName]

		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%s Sessions", consoleName))
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(32, 6, "Date", "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, "Start", "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, "End", "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, "Duration (h)", "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, fmt.Sprintf("Price (%s)", currency), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, s := range consoleSessions {
			pdf.CellFormat(32, 6, s.CreatedAt.Format("2006-01-02"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(32, 6, s.StartTime.Format("15:04"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(32, 6, s.EndTime.Format("15:04"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(32, 6, fmt.Sprintf("%.2f", s.DurationHours), "1", 0, "R", false, 0, "")
			pdf.CellFormat(32, 6, fmt.Sprintf("%.2f", s.Price), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(160, 6,
			fmt.Sprintf("Total revenue for %s: %.2f %s (%d sessions, %s)",
				consoleName, totals.TotalPrice, currency, totals.SessionCount,
				reporting.FormatHours(totals.TotalDurationHours)),
			"1", 0, "R", false, 0, "")
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, "Overall Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Sessions: %d", report.GrandTotalSessionCount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Play time: %s", reporting.FormatHours(report.GrandTotalDuration)))
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Grand total revenue: %.2f %s", report.GrandTotalPrice, currency))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders a settlement report as a workbook with a
// summary sheet and a sessions sheet.
func BuildReportXLSX(report *reporting.SettlementReport, sessions []session.Session, currency string) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	sessionsSheet := "sessions"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(sessionsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "PlayStation Sessions Report")
	_ = f.SetCellValue(summarySheet, "A3", "Period")
	_ = f.SetCellValue(summarySheet, "B3", string(report.Period))
	_ = f.SetCellValue(summarySheet, "A4", "Window Start")
	_ = f.SetCellValue(summarySheet, "B4", report.Window.Start.Format("2006-01-02"))
	_ = f.SetCellValue(summarySheet, "A5", "Window End")
	_ = f.SetCellValue(summarySheet, "B5", report.Window.End.Format("2006-01-02"))
	_ = f.SetCellValue(summarySheet, "A6", "Currency")
	_ = f.SetCellValue(summarySheet, "B6", currency)

	_ = f.SetCellValue(summarySheet, "A8", "Console")
	_ = f.SetCellValue(summarySheet, "B8", "Sessions")
	_ = f.SetCellValue(summarySheet, "C8", "Hours")
	_ = f.SetCellValue(summarySheet, "D8", "Revenue")
	row := 9
	for _, consoleName := range sortedConsoleReports(report) {
		totals := report.Consoles[consoleName]
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), consoleName)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), totals.SessionCount)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), totals.TotalDurationHours)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), totals.TotalPrice)
		row++
	}
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Grand Total")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), report.GrandTotalSessionCount)
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), report.GrandTotalDuration)
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), report.GrandTotalPrice)

	_ = f.SetCellValue(sessionsSheet, "A1", "Console")
	_ = f.SetCellValue(sessionsSheet, "B1", "Date")
	_ = f.SetCellValue(sessionsSheet, "C1", "Start")
	_ = f.SetCellValue(sessionsSheet, "D1", "End")
	_ = f.SetCellValue(sessionsSheet, "E1", "Duration (h)")
	_ = f.SetCellValue(sessionsSheet, "F1", "Price")
	for i, s := range sessions {
		row := i + 2
		_ = f.SetCellValue(sessionsSheet, fmt.Sprintf("A%d", row), s.ConsoleName)
		_ = f.SetCellValue(sessionsSheet, fmt.Sprintf("B%d", row), s.CreatedAt.Format("2006-01-02"))
		_ = f.SetCellValue(sessionsSheet, fmt.Sprintf("C%d", row), s.StartTime.Format("15:04"))
		_ = f.SetCellValue(sessionsSheet, fmt.Sprintf("D%d", row), s.EndTime.Format("15:04"))
		_ = f.SetCellValue(sessionsSheet, fmt.Sprintf("E%d", row), s.DurationHours)
		_ = f.SetCellValue(sessionsSheet, fmt.Sprintf("F%d", row), s.Price)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func groupByConsole(sessions []session.Session) map[string][]session.Session {
	grouped := make(map[string][]session.Session)
	for _, s := range sessions {
		if s.Status != session.StatusCompleted {
			continue
		}
		grouped[s.ConsoleName] = append(grouped[s.ConsoleName], s)
	}
	return grouped
}

func sortedConsoles(grouped map[string][]session.Session) []string {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedConsoleReports(report *reporting.SettlementReport) []string {
	names := make([]string, 0, len(report.Consoles))
	for name := range report.Consoles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
