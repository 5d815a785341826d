package session

import (
	"time"

	"playcafe-cloud/internal/pricing"
)

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusRunning marks a session whose timer is still going.
	StatusRunning Status = "running"
	// StatusCompleted marks a settled session with duration and price.
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	return s == StatusRunning || s == StatusCompleted
}

// Session is one rental interval for a console. EndTime, DurationHours
// and Price carry meaning only once Status is completed; while running
// they hold zero values and the persistence layer stores them as NULL.
type Session struct {
	ID            string
	ConsoleName   string
	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64
	Price         float64
	Status        Status
	CreatedAt     time.Time
}

// NewRunningSession starts a timer for a console at now.
func NewRunningSession(id, consoleName string, now time.Time) (*Session, error) {
	if consoleName == "" {
		return nil, ErrEmptyConsole
	}
	return &Session{
		ID:          id,
		ConsoleName: consoleName,
		StartTime:   now,
		Status:      StatusRunning,
		CreatedAt:   now,
	}, nil
}

// NewCompletedSession creates a settled session from explicit
// endpoints, the manual-entry path that never passes through running.
func NewCompletedSession(id, consoleName string, start, end time.Time, table pricing.TariffTable, now time.Time) (*Session, error) {
	if consoleName == "" {
		return nil, ErrEmptyConsole
	}
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingTime
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	s := &Session{
		ID:          id,
		ConsoleName: consoleName,
		StartTime:   start,
		Status:      StatusRunning,
		CreatedAt:   now,
	}
	if err := s.Complete(end, table); err != nil {
		return nil, err
	}
	return s, nil
}

// Complete transitions a running session to completed at end, deriving
// the real-valued duration and the tariff price.
func (s *Session) Complete(end time.Time, table pricing.TariffTable) error {
	if s == nil {
		return ErrNilSession
	}
	if s.Status != StatusRunning {
		return ErrNotRunning
	}
	if end.Before(s.StartTime) {
		return ErrEndBeforeStart
	}
	s.EndTime = end
	s.DurationHours = end.Sub(s.StartTime).Hours()
	s.Price = table.PriceForHours(s.DurationHours)
	s.Status = StatusCompleted
	return nil
}

// ResolveOvernight interprets a manually entered end-of-day wall-clock
// time: an end at or before the start crossed midnight and belongs to
// the next calendar day.
func ResolveOvernight(start, end time.Time) time.Time {
	if !end.After(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

// Clone returns a detached copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	copy := *s
	return &copy
}
