package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"

	"github.com/s0up4200/atmo/netatmo"
)

// LockTimeout bounds how long a file operation waits for the lock.
const LockTimeout = 5 * time.Second

// FileStore keeps the token in a JSON file readable only by the owner.
// Access is serialized across processes with a lock on <path>.lock.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}

// withLock runs fn while holding the exclusive lock
func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	fl := flock.New(s.lockPath())

	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, 10*time.Millisecond)
	if err != nil {
		if errors.Is(lockCtx.Err(), context.DeadlineExceeded) {
			return ErrLocked
		}
		return fmt.Errorf("failed to lock token file: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer fl.Unlock()

	return fn()
}

// Load reads the token
func (s *FileStore) Load(ctx context.Context) (netatmo.Token, error) {
	var token netatmo.Token
	err := s.withLock(ctx, func() error {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read token file: %w", err)
		}
		if err := json.Unmarshal(data, &token); err != nil {
			return fmt.Errorf("invalid token file %s: %w", s.path, err)
		}
		return nil
	})
	return token, err
}

// Save writes the token atomically
func (s *FileStore) Save(ctx context.Context, token netatmo.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return s.withLock(ctx, func() error {
		return writeAtomic(s.path, data)
	})
}

// Delete removes the token file. Deleting a missing file is not an error.
func (s *FileStore) Delete(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete token file: %w", err)
		}
		return nil
	})
}

func writeAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "token-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Windows cannot rename over an existing file.
	if err := os.Rename(tmpPath, path); err != nil {
		if runtime.GOOS == "windows" {
			_ = os.Remove(path)
			return os.Rename(tmpPath, path)
		}
		os.Remove(tmpPath)
		return err
	}
	return nil
}
