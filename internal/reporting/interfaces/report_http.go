package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"playcafe-cloud/internal/observability/metrics"
	reportapp "playcafe-cloud/internal/reporting/application"
	reporting "playcafe-cloud/internal/reporting/domain"
)

// ReportHandler serves settlement reports and their exports.
type ReportHandler struct {
	service  *reportapp.ReportService
	currency string
}

// NewReportHandler constructs a handler.
func NewReportHandler(service *reportapp.ReportService, currency string) (*ReportHandler, error) {
	if service == nil {
		return nil, errors.New("report handler: nil service")
	}
	if currency == "" {
		currency = "EGP"
	}
	return &ReportHandler{service: service, currency: currency}, nil
}

// ServeHTTP handles routes under /api/v1/reports and /api/v1/shift-end.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/shift-end" && r.Method == http.MethodPost:
		h.handleShiftEnd(w, r)
	case path == "/api/v1/reports" && r.Method == http.MethodGet:
		h.handleReport(w, r)
	case path == "/api/v1/reports/export.pdf" && r.Method == http.MethodGet:
		h.handleExport(w, r, "pdf")
	case path == "/api/v1/reports/export.xlsx" && r.Method == http.MethodGet:
		h.handleExport(w, r, "xlsx")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReportHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	period, err := reporting.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		metrics.ObserveReport(string(period), false, 0)
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}
	started := time.Now()
	report, err := h.service.Generate(r.Context(), period)
	if err != nil {
		metrics.ObserveReport(string(period), false, time.Since(started))
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveReport(string(period), true, time.Since(started))
	writeJSON(w, reportResponse(report, h.currency))
}

func (h *ReportHandler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	period, err := reporting.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}
	report, err := h.service.Generate(r.Context(), period)
	if err != nil {
		metrics.ObserveExport(format, false)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}
	sessions, err := h.service.WindowSessions(r.Context(), period)
	if err != nil {
		metrics.ObserveExport(format, false)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "pdf":
		payload, err = BuildReportPDF(report, sessions, h.currency, time.Now())
		contentType = "application/pdf"
	case "xlsx":
		payload, err = BuildReportXLSX(report, sessions, h.currency)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
		return
	}
	if err != nil {
		metrics.ObserveExport(format, false)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, true)

	filename := fmt.Sprintf("sessions-report-%s-%s.%s", period, time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}

func (h *ReportHandler) handleShiftEnd(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CloseShift(r.Context())
	if err != nil {
		metrics.ObserveShiftClose(false)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveShiftClose(true)
	writeJSON(w, reportResponse(report, h.currency))
}

func reportResponse(report *reporting.SettlementReport, currency string) map[string]any {
	consoles := make(map[string]any, len(report.Consoles))
	for name, totals := range report.Consoles {
		consoles[name] = map[string]any{
			"session_count":  totals.SessionCount,
			"total_duration": totals.TotalDurationHours,
			"total_price":    totals.TotalPrice,
			"play_time":      reporting.FormatHours(totals.TotalDurationHours),
		}
	}
	return map[string]any{
		"period":                    string(report.Period),
		"window_start":              report.Window.Start,
		"window_end":                report.Window.End,
		"currency":                  currency,
		"consoles":                  consoles,
		"grand_total_session_count": report.GrandTotalSessionCount,
		"grand_total_duration":      report.GrandTotalDuration,
		"grand_total_price":         report.GrandTotalPrice,
		"grand_total_play_time":     reporting.FormatHours(report.GrandTotalDuration),
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
