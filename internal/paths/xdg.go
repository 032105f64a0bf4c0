// Package paths resolves the user-level config directory for advent.
package paths

import (
	"path/filepath"
	"runtime"
)

// Env is the interface for environment variable lookups.
// Implementations must return "" for unset variables.
type Env interface {
	Get(key string) string
}

// ConfigDirEnv overrides the user config directory.
const ConfigDirEnv = "ADVENT_CONFIG_DIR"

// ResolveConfigDir computes the user config directory.
//
// Resolution order:
//  1. ADVENT_CONFIG_DIR env var (if set)
//  2. macOS: ~/Library/Preferences/advent
//  3. XDG_CONFIG_HOME/advent (if set)
//  4. ~/.config/advent
//
// homeDir must be absolute. Nothing is created on disk.
func ResolveConfigDir(env Env, homeDir string) string {
	return ResolveConfigDirWithOS(env, homeDir, IsDarwin())
}

// IsDarwin returns true if the current OS is macOS.
func IsDarwin() bool {
	return runtime.GOOS == "darwin"
}

// ResolveConfigDirWithOS is ResolveConfigDir with an explicit OS flag for testing.
func ResolveConfigDirWithOS(env Env, homeDir string, isDarwin bool) string {
	if v := env.Get(ConfigDirEnv); v != "" {
		return v
	}
	if isDarwin {
		return filepath.Join(homeDir, "Library", "Preferences", "advent")
	}
	if v := env.Get("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "advent")
	}
	return filepath.Join(homeDir, ".config", "advent")
}
