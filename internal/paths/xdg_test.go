package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mapEnv is a simple map-backed Env implementation for testing.
type mapEnv map[string]string

func (m mapEnv) Get(key string) string {
	return m[key]
}

func TestResolveConfigDir(t *testing.T) {
	home := filepath.FromSlash("/home/testuser")

	tests := []struct {
		name     string
		env      mapEnv
		isDarwin bool
		want     string
	}{
		{
			name:     "override (darwin)",
			env:      mapEnv{"ADVENT_CONFIG_DIR": "/custom/config"},
			isDarwin: true,
			want:     "/custom/config",
		},
		{
			name:     "override (linux)",
			env:      mapEnv{"ADVENT_CONFIG_DIR": "/custom/config"},
			isDarwin: false,
			want:     "/custom/config",
		},
		{
			name:     "darwin default ignores XDG",
			env:      mapEnv{"XDG_CONFIG_HOME": "/xdg/config"},
			isDarwin: true,
			want:     filepath.FromSlash("/home/testuser/Library/Preferences/advent"),
		},
		{
			name:     "XDG_CONFIG_HOME (linux)",
			env:      mapEnv{"XDG_CONFIG_HOME": "/xdg/config"},
			isDarwin: false,
			want:     filepath.FromSlash("/xdg/config/advent"),
		},
		{
			name:     "default (linux)",
			env:      mapEnv{},
			isDarwin: false,
			want:     filepath.FromSlash("/home/testuser/.config/advent"),
		},
		{
			name:     "override beats XDG",
			env:      mapEnv{"ADVENT_CONFIG_DIR": "/override", "XDG_CONFIG_HOME": "/xdg/config"},
			isDarwin: false,
			want:     "/override",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveConfigDirWithOS(tt.env, home, tt.isDarwin))
		})
	}
}
