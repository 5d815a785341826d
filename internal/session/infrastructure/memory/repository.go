package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	session "playcafe-cloud/internal/session/domain"
)

// SessionRepository is an in-memory repository for sessions.
type SessionRepository struct {
	mu   sync.RWMutex
	data map[string]*session.Session
}

// NewSessionRepository constructs a repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{data: make(map[string]*session.Session)}
}

// Insert stores a new session.
func (r *SessionRepository) Insert(ctx context.Context, s *session.Session) error {
	_ = ctx
	if s == nil {
		return session.ErrNilSession
	}
	r.mu.Lock()
	r.data[s.ID] = s.Clone()
	r.mu.Unlock()
	return nil
}

// Update overwrites an existing session.
func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	_ = ctx
	if s == nil {
		return session.ErrNilSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[s.ID]; !ok {
		return session.ErrNotFound
	}
	r.data[s.ID] = s.Clone()
	return nil
}

// Delete removes a session by id.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return session.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// DeleteAll removes every session.
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	_ = ctx
	r.mu.Lock()
	r.data = make(map[string]*session.Session)
	r.mu.Unlock()
	return nil
}

// GetByID loads a session, nil when absent.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	_ = ctx
	r.mu.RLock()
	s := r.data[id]
	r.mu.RUnlock()
	return s.Clone(), nil
}

// FindRunningByConsole returns the running session for a console, nil
// when the console is idle.
func (r *SessionRepository) FindRunningByConsole(ctx context.Context, consoleName string) (*session.Session, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.data {
		if s.ConsoleName == consoleName && s.Status == session.StatusRunning {
			return s.Clone(), nil
		}
	}
	return nil, nil
}

// ListByConsole lists sessions for a console; an empty status matches
// any status.
func (r *SessionRepository) ListByConsole(ctx context.Context, consoleName string, status session.Status) ([]session.Session, error) {
	_ = ctx
	return r.list(func(s *session.Session) bool {
		if s.ConsoleName != consoleName {
			return false
		}
		return status == "" || s.Status == status
	}), nil
}

// ListAll lists every session.
func (r *SessionRepository) ListAll(ctx context.Context) ([]session.Session, error) {
	_ = ctx
	return r.list(func(*session.Session) bool { return true }), nil
}

// ListRunning lists running sessions across consoles.
func (r *SessionRepository) ListRunning(ctx context.Context) ([]session.Session, error) {
	_ = ctx
	return r.list(func(s *session.Session) bool { return s.Status == session.StatusRunning }), nil
}

// ListCompletedBetween lists completed sessions created inside the
// inclusive window.
func (r *SessionRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]session.Session, error) {
	_ = ctx
	return r.list(func(s *session.Session) bool {
		if s.Status != session.StatusCompleted {
			return false
		}
		return !s.CreatedAt.Before(from) && !s.CreatedAt.After(to)
	}), nil
}

func (r *SessionRepository) list(match func(*session.Session) bool) []session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []session.Session
	for _, s := range r.data {
		if match(s) {
			result = append(result, *s.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
