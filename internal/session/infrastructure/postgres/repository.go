package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	session "playcafe-cloud/internal/session/domain"
)

// SessionRepository persists sessions in PostgreSQL. The sessions table
// is expected to carry a partial unique index on console_name where
// status = 'running' as the storage-side backstop for the one-running-
// session-per-console invariant; the service checks the precondition
// explicitly before inserting.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository constructs a repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, console_name, start_time, end_time, duration_hours, price, status, created_at`

// Insert stores a session in either lifecycle shape; end/duration/price
// are NULL while running.
func (r *SessionRepository) Insert(ctx context.Context, s *session.Session) error {
	if r == nil || r.db == nil {
		return errors.New("session repo: nil db")
	}
	if s == nil {
		return session.ErrNilSession
	}
	end, duration, price := completedFields(s)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (
	id, console_name, start_time, end_time, duration_hours, price, status, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.ConsoleName, s.StartTime, end, duration, price, s.Status, s.CreatedAt)
	return err
}

// Update rewrites the mutable lifecycle fields of a session.
func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	if r == nil || r.db == nil {
		return errors.New("session repo: nil db")
	}
	if s == nil {
		return session.ErrNilSession
	}
	end, duration, price := completedFields(s)
	result, err := r.db.ExecContext(ctx, `
UPDATE sessions
SET end_time = $1, duration_hours = $2, price = $3, status = $4
WHERE id = $5`, end, duration, price, s.Status, s.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	return nil
}

// Delete removes a session by id.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("session repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteAll removes every session record.
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errors.New("session repo: nil db")
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions`)
	return err
}

// GetByID loads a session, nil when absent.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("session repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+sessionColumns+`
FROM sessions
WHERE id = $1
LIMIT 1`, id)
	return scanSession(row)
}

// FindRunningByConsole returns the running session for a console, nil
// when the console is idle.
func (r *SessionRepository) FindRunningByConsole(ctx context.Context, consoleName string) (*session.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("session repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+sessionColumns+`
FROM sessions
WHERE console_name = $1 AND status = $2
LIMIT 1`, consoleName, session.StatusRunning)
	return scanSession(row)
}

// ListByConsole lists sessions for a console, newest first; an empty
// status matches any status.
func (r *SessionRepository) ListByConsole(ctx context.Context, consoleName string, status session.Status) ([]session.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("session repo: nil db")
	}
	query := `
SELECT ` + sessionColumns + `
FROM sessions
WHERE console_name = $1`
	args := []any{consoleName}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListAll lists every session, newest first.
func (r *SessionRepository) ListAll(ctx context.Context) ([]session.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("session repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+sessionColumns+`
FROM sessions
ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListRunning lists running sessions in a stable batch order.
func (r *SessionRepository) ListRunning(ctx context.Context) ([]session.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("session repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+sessionColumns+`
FROM sessions
WHERE status = $1
ORDER BY start_time ASC, id ASC`, session.StatusRunning)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListCompletedBetween lists completed sessions created inside the
// inclusive window, oldest first.
func (r *SessionRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]session.Session, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("session repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+sessionColumns+`
FROM sessions
WHERE status = $1 AND created_at >= $2 AND created_at <= $3
ORDER BY created_at ASC`, session.StatusCompleted, from, to)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func completedFields(s *session.Session) (sql.NullTime, sql.NullFloat64, sql.NullFloat64) {
	if s.Status != session.StatusCompleted {
		return sql.NullTime{}, sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullTime{Time: s.EndTime, Valid: true},
		sql.NullFloat64{Float64: s.DurationHours, Valid: true},
		sql.NullFloat64{Float64: s.Price, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var s session.Session
	var end sql.NullTime
	var duration sql.NullFloat64
	var price sql.NullFloat64
	err := row.Scan(
		&s.ID,
		&s.ConsoleName,
		&s.StartTime,
		&end,
		&duration,
		&price,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if end.Valid {
		s.EndTime = end.Time.UTC()
	}
	if duration.Valid {
		s.DurationHours = duration.Float64
	}
	if price.Valid {
		s.Price = price.Float64
	}
	s.StartTime = s.StartTime.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

func collectSessions(rows *sql.Rows) ([]session.Session, error) {
	defer rows.Close()
	var result []session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		if s != nil {
			result = append(result, *s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
