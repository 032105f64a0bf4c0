// Package workspace discovers the root of an advent workspace.
package workspace

import (
	"path/filepath"

	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/manifest"
)

// ManifestName is the workspace manifest looked for during discovery.
const ManifestName = "Cargo.toml"

// FindRoot walks up from start to the nearest directory that holds an
// advent.yaml, or a Cargo.toml with a [workspace] table.
// Returns (start, false) when no ancestor qualifies. start must be absolute.
func FindRoot(fsys fs.FS, start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		if IsRoot(fsys, dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Clean(start), false
		}
		dir = parent
	}
}

// IsRoot reports whether dir is a workspace root.
func IsRoot(fsys fs.FS, dir string) bool {
	if _, err := fsys.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return true
	}
	m, err := manifest.Load(fsys, filepath.Join(dir, ManifestName))
	if err != nil {
		return false
	}
	return m.IsWorkspace()
}
