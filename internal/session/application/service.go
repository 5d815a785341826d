package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"playcafe-cloud/internal/pricing"
	session "playcafe-cloud/internal/session/domain"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// SessionService handles session lifecycle use cases. The service holds
// no session state between calls; the repository is the single source
// of truth.
type SessionService struct {
	repo   session.Repository
	tariff pricing.TariffTable
	clock  Clock
}

// NewSessionService constructs the service.
func NewSessionService(repo session.Repository, tariff pricing.TariffTable, clock Clock) (*SessionService, error) {
	if repo == nil {
		return nil, errors.New("session service: nil repository")
	}
	if err := tariff.Validate(); err != nil {
		return nil, fmt.Errorf("session service: %w", err)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &SessionService{repo: repo, tariff: tariff, clock: clock}, nil
}

// Start begins a running session for a console. At most one running
// session may exist per console; the precondition is checked here
// rather than trusted to the storage schema.
func (s *SessionService) Start(ctx context.Context, consoleName string) (*session.Session, error) {
	if consoleName == "" {
		return nil, session.ErrEmptyConsole
	}
	running, err := s.repo.FindRunningByConsole(ctx, consoleName)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, session.ErrConsoleBusy
	}

	record, err := session.NewRunningSession(uuid.NewString(), consoleName, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Stop completes a running session at the current time.
func (s *SessionService) Stop(ctx context.Context, id string) (*session.Session, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, session.ErrNotFound
	}
	if err := record.Complete(s.clock.Now(), s.tariff); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ManualAdd records a completed session from explicit same-day
// wall-clock endpoints. An end at or before the start is read as
// crossing midnight and rolls forward one day.
func (s *SessionService) ManualAdd(ctx context.Context, consoleName string, start, end time.Time) (*session.Session, error) {
	if start.IsZero() || end.IsZero() {
		return nil, session.ErrMissingTime
	}
	end = session.ResolveOvernight(start, end)
	record, err := session.NewCompletedSession(uuid.NewString(), consoleName, start, end, s.tariff, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a session in any state.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ClearAll removes every session record.
func (s *SessionService) ClearAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// StopAll completes every running session across all consoles, sharing
// one end timestamp but pricing each by its own elapsed time. The batch
// runs sequentially in a stable order; the first storage failure aborts
// the remainder and the error names the failing session. Sessions
// completed before the failure stay completed.
func (s *SessionService) StopAll(ctx context.Context) ([]session.Session, error) {
	running, err := s.repo.ListRunning(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	stopped := make([]session.Session, 0, len(running))
	for i := range running {
		record := running[i]
		if err := record.Complete(now, s.tariff); err != nil {
			return stopped, fmt.Errorf("stop all: session %s: %w", record.ID, err)
		}
		if err := s.repo.Update(ctx, &record); err != nil {
			return stopped, fmt.Errorf("stop all: session %s: %w", record.ID, err)
		}
		stopped = append(stopped, record)
	}
	return stopped, nil
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*session.Session, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, session.ErrNotFound
	}
	return record, nil
}

// RunningForConsole returns the running session for a console, if any.
// A nil result with nil error means the console is idle; clients poll
// this for freshness, not correctness.
func (s *SessionService) RunningForConsole(ctx context.Context, consoleName string) (*session.Session, error) {
	if consoleName == "" {
		return nil, session.ErrEmptyConsole
	}
	return s.repo.FindRunningByConsole(ctx, consoleName)
}

// List returns sessions filtered by console and status; empty filters
// return everything.
func (s *SessionService) List(ctx context.Context, consoleName string, status session.Status) ([]session.Session, error) {
	if consoleName != "" {
		return s.repo.ListByConsole(ctx, consoleName, status)
	}
	if status == session.StatusRunning {
		return s.repo.ListRunning(ctx)
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	filtered := make([]session.Session, 0, len(all))
	for i := range all {
		if all[i].Status == status {
			filtered = append(filtered, all[i])
		}
	}
	return filtered, nil
}
