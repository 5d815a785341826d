package session

import (
	"context"
	"time"
)

// Repository persists sessions. Lookups return (nil, nil) when nothing
// matches; callers translate that into ErrNotFound where it matters.
type Repository interface {
	Insert(ctx context.Context, s *Session) error
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error

	GetByID(ctx context.Context, id string) (*Session, error)
	FindRunningByConsole(ctx context.Context, consoleName string) (*Session, error)
	ListByConsole(ctx context.Context, consoleName string, status Status) ([]Session, error)
	ListAll(ctx context.Context) ([]Session, error)
	ListRunning(ctx context.Context) ([]Session, error)
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]Session, error)
}
