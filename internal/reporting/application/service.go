package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	reporting "playcafe-cloud/internal/reporting/domain"
	sessionapp "playcafe-cloud/internal/session/application"
	session "playcafe-cloud/internal/session/domain"
)

// ReportService computes settlement reports over completed sessions.
type ReportService struct {
	repo     session.Repository
	sessions *sessionapp.SessionService
	clock    sessionapp.Clock
	location *time.Location
}

// NewReportService constructs the service. location is the business
// timezone settlement windows are computed in.
func NewReportService(repo session.Repository, sessions *sessionapp.SessionService, clock sessionapp.Clock, location *time.Location) (*ReportService, error) {
	if repo == nil {
		return nil, errors.New("report service: nil repository")
	}
	if sessions == nil {
		return nil, errors.New("report service: nil session service")
	}
	if clock == nil {
		clock = sessionapp.SystemClock{}
	}
	if location == nil {
		location = time.Local
	}
	return &ReportService{repo: repo, sessions: sessions, clock: clock, location: location}, nil
}

// Generate builds the settlement report for the window holding now.
func (s *ReportService) Generate(ctx context.Context, period reporting.Period) (*reporting.SettlementReport, error) {
	window := reporting.WindowFor(period, s.clock.Now().In(s.location))
	sessions, err := s.repo.ListCompletedBetween(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	return reporting.BuildSettlementReport(period, window, sessions), nil
}

// WindowSessions returns the completed sessions feeding a period's
// report, for export rendering.
func (s *ReportService) WindowSessions(ctx context.Context, period reporting.Period) ([]session.Session, error) {
	window := reporting.WindowFor(period, s.clock.Now().In(s.location))
	return s.repo.ListCompletedBetween(ctx, window.Start, window.End)
}

// CloseShift performs the shift-end settlement: every running session
// is stopped at now, the daily report is computed over the settled
// records, and all session records are purged. A stop failure aborts
// before the report; sessions stopped before the failure remain
// completed (see SessionService.StopAll).
func (s *ReportService) CloseShift(ctx context.Context) (*reporting.SettlementReport, error) {
	if _, err := s.sessions.StopAll(ctx); err != nil {
		return nil, fmt.Errorf("close shift: %w", err)
	}
	report, err := s.Generate(ctx, reporting.PeriodDaily)
	if err != nil {
		return nil, fmt.Errorf("close shift: %w", err)
	}
	if err := s.sessions.ClearAll(ctx); err != nil {
		return nil, fmt.Errorf("close shift: %w", err)
	}
	return report, nil
}
