package data

import (
	"errors"
	"fmt"
)

// Kind classifies a database Error.
type Kind int

const (
	// KindOpen covers creating the directory and opening the lock file.
	KindOpen Kind = iota + 1
	// KindReadLock is a failure to take the shared lock.
	KindReadLock
	// KindWriteLock is a failure to take the exclusive lock.
	KindWriteLock
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "opening the database"
	case KindReadLock:
		return "locking the database for reading"
	case KindWriteLock:
		return "locking the database for writing"
	default:
		return fmt.Sprintf("data.Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is; an *Error matches the sentinel of its Kind.
var (
	ErrOpen      = errors.New("opening the database")
	ErrReadLock  = errors.New("locking the database for reading")
	ErrWriteLock = errors.New("locking the database for writing")
)

// Error is returned by Open. It wraps the underlying I/O error with what
// was being attempted.
type Error struct {
	Kind    Kind
	Context string
	Err     error
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s -- %v", e.Kind, e.Context, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrOpen:
		return e.Kind == KindOpen
	case ErrReadLock:
		return e.Kind == KindReadLock
	case ErrWriteLock:
		return e.Kind == KindWriteLock
	}
	return false
}
