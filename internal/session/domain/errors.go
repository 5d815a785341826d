package session

import "errors"

var (
	// ErrNotFound is returned when no session matches the given id.
	ErrNotFound = errors.New("session: not found")
	// ErrNotRunning is returned when stopping a session that is not running.
	ErrNotRunning = errors.New("session: not running")
	// ErrConsoleBusy is returned when a console already has a running session.
	ErrConsoleBusy = errors.New("session: console already has a running session")
	// ErrEmptyConsole is returned when the console name is empty.
	ErrEmptyConsole = errors.New("session: empty console name")
	// ErrMissingTime is returned when a manual entry lacks a start or end time.
	ErrMissingTime = errors.New("session: missing start or end time")
	// ErrEndBeforeStart is returned when an end time precedes the start time.
	ErrEndBeforeStart = errors.New("session: end time before start time")
	// ErrNilSession is returned when persisting a nil session.
	ErrNilSession = errors.New("session: nil session")
)
