package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/adnsv/go-utils/filesystem"
	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// Load reads, defaults and validates the config file at path.
// Returns E_CONFIG_NOT_FOUND if the file does not exist and E_INVALID_CONFIG
// if it is not valid YAML, has unknown keys, or fails validation.
func Load(fsys fs.FS, path string) (Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.EConfigNotFound, "config file not found: "+path)
		}
		return Config{}, errors.Wrap(errors.EConfigNotFound, "failed to read config file "+path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes YAML config bytes, applies defaults and validates the result.
// An empty document yields the defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(errors.EInvalidConfig, "invalid yaml: "+err.Error(), err)
	}
	return Validate(cfg.withDefaults())
}

// Resolve finds the config for a workspace. In order:
//  1. explicit (the --config flag), which must exist
//  2. <root>/advent.yaml
//  3. <userConfigDir>/config.yaml
//  4. Default()
//
// userConfigDir may be empty to skip the user-level file.
func Resolve(fsys fs.FS, root, explicit, userConfigDir string) (Config, error) {
	if explicit != "" {
		return Load(fsys, explicit)
	}

	candidates := []string{filepath.Join(root, FileName)}
	if userConfigDir != "" {
		candidates = append(candidates, filepath.Join(userConfigDir, "config.yaml"))
	}
	for _, path := range candidates {
		if filesystem.FileExists(path) {
			return Load(fsys, path)
		}
	}
	return Default(), nil
}
