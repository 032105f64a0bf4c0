// Package manifest edits a generated project's Cargo.toml.
//
// The document is decoded into a generic tree so keys advent does not know
// about survive the round trip; it is always rewritten in full.
package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// DependenciesKey is the table holding the project's dependencies.
const DependenciesKey = "dependencies"

// WorkspaceKey is the table that makes a manifest a workspace root.
const WorkspaceKey = "workspace"

// Manifest is an in-memory TOML document.
type Manifest struct {
	doc map[string]any
}

// Parse decodes TOML bytes. Returns E_MANIFEST_INVALID on malformed input.
func Parse(data []byte) (*Manifest, error) {
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.EManifestInvalid, "invalid toml: "+err.Error(), err)
	}
	return &Manifest{doc: doc}, nil
}

// Load reads and parses the manifest at path.
// Returns E_MANIFEST_NOT_FOUND if it does not exist.
func Load(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.EManifestNotFound, "manifest not found: "+path)
		}
		return nil, errors.Wrap(errors.EManifestNotFound, "failed to read manifest "+path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.WrapWithDetails(errors.EManifestInvalid,
			"invalid manifest "+path, err, map[string]string{"path": path})
	}
	return m, nil
}

// Save encodes the whole document and replaces path atomically.
func (m *Manifest) Save(fsys fs.FS, path string) error {
	data, err := m.Bytes()
	if err != nil {
		return err
	}
	if err := fs.WriteFileAtomic(fsys, path, data, 0644); err != nil {
		return errors.Wrap(errors.EWriteFailed, "failed to write manifest "+path, err)
	}
	return nil
}

// Bytes encodes the document.
func (m *Manifest) Bytes() ([]byte, error) {
	data, err := toml.Marshal(m.doc)
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to encode manifest", err)
	}
	return data, nil
}

// Tree returns the decoded document. Callers must not modify it.
func (m *Manifest) Tree() map[string]any {
	return m.doc
}

// SetWorkspaceDependency inserts or overwrites dependencies.<name> with
// { workspace = true }, creating the dependencies table when missing.
// Returns E_MANIFEST_INVALID if dependencies exists but is not a table.
func (m *Manifest) SetWorkspaceDependency(name string) error {
	deps, err := m.dependencies(true)
	if err != nil {
		return err
	}
	deps[name] = map[string]any{"workspace": true}
	return nil
}

// Dependency returns the raw value of dependencies.<name>.
func (m *Manifest) Dependency(name string) (any, bool) {
	deps, err := m.dependencies(false)
	if err != nil || deps == nil {
		return nil, false
	}
	v, ok := deps[name]
	return v, ok
}

// InheritsWorkspace reports whether dependencies.<name> is { workspace = true }.
func (m *Manifest) InheritsWorkspace(name string) bool {
	v, ok := m.Dependency(name)
	if !ok {
		return false
	}
	table, ok := v.(map[string]any)
	if !ok {
		return false
	}
	ws, ok := table["workspace"].(bool)
	return ok && ws
}

// IsWorkspace reports whether the document has a [workspace] table.
func (m *Manifest) IsWorkspace() bool {
	_, ok := m.doc[WorkspaceKey].(map[string]any)
	return ok
}

func (m *Manifest) dependencies(create bool) (map[string]any, error) {
	raw, ok := m.doc[DependenciesKey]
	if !ok {
		if !create {
			return nil, nil
		}
		deps := map[string]any{}
		m.doc[DependenciesKey] = deps
		return deps, nil
	}
	deps, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.EManifestInvalid,
			fmt.Sprintf("%s must be a table, got %T", DependenciesKey, raw))
	}
	return deps, nil
}
