// Package lock provides a workspace-level lock for mutating advent commands.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the lock file created in the workspace root.
const FileName = ".advent.lock"

// LockInfo contains the metadata stored in a lock file.
type LockInfo struct {
	PID       int       `yaml:"pid"`
	CreatedAt time.Time `yaml:"created_at"`
	Cmd       string    `yaml:"cmd,omitempty"`
}

// ErrLocked indicates a non-stale lock is held by someone else.
type ErrLocked struct {
	Info *LockInfo // nil if lock file is unreadable
	Path string
}

func (e *ErrLocked) Error() string {
	if e.Info != nil {
		return fmt.Sprintf("workspace is locked by pid %d (%s) since %s (lock file: %s)",
			e.Info.PID, e.Info.Cmd, e.Info.CreatedAt.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("workspace is locked (lock file: %s)", e.Path)
}

// WorkspaceLock serializes mutating commands within one workspace root.
type WorkspaceLock struct {
	Root       string
	StaleAfter time.Duration
	Now        func() time.Time
	IsPIDAlive func(pid int) bool
}

// NewWorkspaceLock returns a WorkspaceLock with a 2h stale threshold.
func NewWorkspaceLock(root string) WorkspaceLock {
	return WorkspaceLock{
		Root:       root,
		StaleAfter: 2 * time.Hour,
		Now:        time.Now,
		IsPIDAlive: isPIDAlive,
	}
}

// Path returns the lock file path.
func (l WorkspaceLock) Path() string {
	return filepath.Join(l.Root, FileName)
}

// Lock acquires the workspace lock and returns an unlock function.
// cmd is recorded in the lock file for diagnostics.
// If the lock is held and not stale, returns *ErrLocked.
func (l WorkspaceLock) Lock(cmd string) (unlock func() error, err error) {
	lockPath := l.Path()
	const maxRetries = 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			info := LockInfo{
				PID:       os.Getpid(),
				CreatedAt: l.Now(),
				Cmd:       cmd,
			}
			data, _ := yaml.Marshal(info)
			if _, writeErr := f.Write(data); writeErr != nil {
				f.Close()
				os.Remove(lockPath)
				return nil, fmt.Errorf("failed to write lock file: %w", writeErr)
			}
			if closeErr := f.Close(); closeErr != nil {
				os.Remove(lockPath)
				return nil, fmt.Errorf("failed to close lock file: %w", closeErr)
			}

			return func() error {
				err := os.Remove(lockPath)
				if err != nil && !os.IsNotExist(err) {
					return err
				}
				return nil
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		info, readErr := readLockInfo(lockPath)
		if readErr != nil {
			// unreadable: fall back to mtime
			stat, statErr := os.Stat(lockPath)
			if statErr != nil {
				return nil, &ErrLocked{Path: lockPath}
			}
			if l.Now().Sub(stat.ModTime()) <= l.StaleAfter {
				return nil, &ErrLocked{Path: lockPath}
			}
			if removeErr := os.Remove(lockPath); removeErr != nil && !os.IsNotExist(removeErr) {
				return nil, &ErrLocked{Path: lockPath}
			}
			continue
		}

		if l.isStale(info) {
			if removeErr := os.Remove(lockPath); removeErr != nil && !os.IsNotExist(removeErr) {
				return nil, &ErrLocked{Info: info, Path: lockPath}
			}
			continue
		}

		return nil, &ErrLocked{Info: info, Path: lockPath}
	}

	return nil, &ErrLocked{Path: lockPath}
}

func readLockInfo(path string) (*LockInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	if info.PID == 0 {
		return nil, errors.New("lock file has no pid")
	}
	return &info, nil
}

func (l WorkspaceLock) isStale(info *LockInfo) bool {
	if !l.IsPIDAlive(info.PID) {
		return true
	}
	return l.Now().Sub(info.CreatedAt) > l.StaleAfter
}

// isPIDAlive sends signal 0, which checks for existence without delivering anything.
func isPIDAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM: exists but owned by someone else
	return errors.Is(err, syscall.EPERM)
}
