// Package data opens the on-disk database directory.
//
// The database is a loose collection of files in one directory, so opening
// it only means creating the directory (when asked) and taking a lock on
// its lock file: shared for read-only use, exclusive otherwise. The lock is
// held until Close.
package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// LockFilename is the empty file used to arbitrate access to a database.
const LockFilename = "db.lock"

// OpenFlags control Open.
type OpenFlags struct {
	// Create makes Open create the directory and lock file if missing.
	Create bool

	// ReadOnly takes a shared lock, allowing any number of readers as long
	// as there is no writer.
	ReadOnly bool
}

// DefaultFlags creates the database if needed and opens it for writing.
func DefaultFlags() OpenFlags {
	return OpenFlags{Create: true}
}

// ReadOnlyFlags opens an existing database for reading only.
func ReadOnlyFlags() OpenFlags {
	return OpenFlags{ReadOnly: true}
}

// Database is an open database directory.
type Database struct {
	// Path is the top-level database directory.
	Path string

	readOnly bool
	lock     *os.File
}

// Open opens the database at path. Failures are *Error values.
func Open(path string, flags OpenFlags) (*Database, error) {
	if flags.Create {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, newError(KindOpen, err, "creating database directory at `%s`", path)
		}
	}

	lockPath := filepath.Join(path, LockFilename)

	mode := os.O_RDONLY
	verb := "opening"
	if flags.Create {
		mode = os.O_RDWR | os.O_CREATE
		verb = "opening or creating"
	}
	lock, err := os.OpenFile(lockPath, mode, 0o644)
	if err != nil {
		return nil, newError(KindOpen, err, "%s lock file `%s`", verb, lockPath)
	}

	if flags.ReadOnly {
		err = flock(lock, unix.LOCK_SH)
		if err != nil {
			lock.Close()
			return nil, newError(KindReadLock, err, "acquiring shared lock on `%s`", lockPath)
		}
	} else {
		err = flock(lock, unix.LOCK_EX)
		if err != nil {
			lock.Close()
			return nil, newError(KindWriteLock, err, "acquiring exclusive lock on `%s`", lockPath)
		}
	}

	return &Database{
		Path:     path,
		readOnly: flags.ReadOnly,
		lock:     lock,
	}, nil
}

func flock(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how|unix.LOCK_NB)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

// IsReadOnly reports whether the database was opened read-only.
func (db *Database) IsReadOnly() bool {
	return db.readOnly
}

// Close releases the lock. It is safe to call more than once.
func (db *Database) Close() error {
	if db.lock == nil {
		return nil
	}
	err := db.lock.Close()
	db.lock = nil
	return err
}

func (db *Database) String() string {
	if db.readOnly {
		return fmt.Sprintf("Database([read-only] %s)", db.Path)
	}
	return fmt.Sprintf("Database(%s)", db.Path)
}
