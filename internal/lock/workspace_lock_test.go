package lock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func stubNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func stubPIDAlive(alive bool) func(int) bool {
	return func(int) bool { return alive }
}

func testLock(root string, now time.Time, alive bool) WorkspaceLock {
	return WorkspaceLock{
		Root:       root,
		StaleAfter: 2 * time.Hour,
		Now:        stubNow(now),
		IsPIDAlive: stubPIDAlive(alive),
	}
}

func writeLockInfo(t *testing.T, path string, info LockInfo) {
	t.Helper()
	data, err := yaml.Marshal(info)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func TestWorkspaceLock_WritesLockFile(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 12, 1, 6, 0, 0, 0, time.UTC)

	unlock, err := testLock(root, now, true).Lock("new 2025 1")
	require.NoError(t, err)
	defer unlock()

	lockPath := filepath.Join(root, FileName)
	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)

	var info LockInfo
	require.NoError(t, yaml.Unmarshal(data, &info))
	assert.Equal(t, os.Getpid(), info.PID)
	assert.True(t, info.CreatedAt.Equal(now))
	assert.Equal(t, "new 2025 1", info.Cmd)

	stat, err := os.Stat(lockPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), stat.Mode().Perm())
}

func TestWorkspaceLock_UnlockRemovesFile(t *testing.T) {
	root := t.TempDir()
	l := testLock(root, time.Now(), true)

	unlock, err := l.Lock("new")
	require.NoError(t, err)
	require.NoError(t, unlock())

	_, err = os.Stat(l.Path())
	assert.True(t, os.IsNotExist(err))

	// unlocking twice is harmless
	assert.NoError(t, unlock())
}

func TestWorkspaceLock_ErrLockedOnContention(t *testing.T) {
	root := t.TempDir()
	l := testLock(root, time.Date(2025, 12, 1, 6, 0, 0, 0, time.UTC), true)

	unlockA, err := l.Lock("new 2025 1")
	require.NoError(t, err)
	defer unlockA()

	_, err = l.Lock("new 2025 2")
	require.Error(t, err)

	errLocked, ok := err.(*ErrLocked)
	require.True(t, ok, "expected *ErrLocked, got %T", err)
	require.NotNil(t, errLocked.Info)
	assert.Equal(t, "new 2025 1", errLocked.Info.Cmd)
	assert.Contains(t, errLocked.Error(), "locked by pid")
}

func TestWorkspaceLock_StaleByDeadPIDSteals(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 12, 1, 6, 0, 0, 0, time.UTC)
	lockPath := filepath.Join(root, FileName)
	writeLockInfo(t, lockPath, LockInfo{PID: 999999, CreatedAt: now, Cmd: "old"})

	unlock, err := testLock(root, now, false).Lock("fresh")
	require.NoError(t, err)
	defer unlock()

	info, err := readLockInfo(lockPath)
	require.NoError(t, err)
	assert.Equal(t, "fresh", info.Cmd)
}

func TestWorkspaceLock_StaleByAgeSteals(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 12, 1, 6, 0, 0, 0, time.UTC)
	writeLockInfo(t, filepath.Join(root, FileName), LockInfo{
		PID:       12345,
		CreatedAt: now.Add(-(2*time.Hour + time.Second)),
		Cmd:       "old",
	})

	unlock, err := testLock(root, now, true).Lock("fresh")
	require.NoError(t, err)
	defer unlock()
}

func TestWorkspaceLock_UnreadableLockFile(t *testing.T) {
	root := t.TempDir()
	lockPath := filepath.Join(root, FileName)
	require.NoError(t, os.WriteFile(lockPath, []byte(": not yaml ["), 0600))

	t.Run("recent mtime is treated as locked", func(t *testing.T) {
		_, err := testLock(root, time.Now(), true).Lock("new")
		require.Error(t, err)
		errLocked, ok := err.(*ErrLocked)
		require.True(t, ok)
		assert.Nil(t, errLocked.Info)
	})

	t.Run("old mtime is stolen", func(t *testing.T) {
		unlock, err := testLock(root, time.Now().Add(3*time.Hour), true).Lock("new")
		require.NoError(t, err)
		defer unlock()
	})
}

func TestIsPIDAlive(t *testing.T) {
	assert.True(t, isPIDAlive(os.Getpid()))
	assert.False(t, isPIDAlive(0))
	assert.False(t, isPIDAlive(-1))
}
