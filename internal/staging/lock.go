package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the temp root while a run holds it.
const LockFileName = ".av1batch.lock"

// ErrLocked reports that another run already holds the temp root.
var ErrLocked = errors.New("temp directory is in use by another run")

// Lock is an exclusive advisory lock on a temp root.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the temp-root lock without blocking.
func AcquireLock(tempDir string) (*Lock, error) {
	path := filepath.Join(tempDir, LockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release removes the lock file and unlocks it.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	_ = os.Remove(l.path)
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
