// Package config loads the optional advent.yaml workspace configuration.
package config

import (
	"path/filepath"
)

// FileName is the workspace-level config file looked up in the workspace root.
const FileName = "advent.yaml"

// Config holds the naming and tooling conventions for a workspace.
// Every field has a default, so a workspace without advent.yaml behaves
// like a stock cargo Advent of Code workspace.
type Config struct {
	Version       int    `yaml:"version"`
	BuildTool     string `yaml:"build_tool"`
	Prefix        string `yaml:"prefix"`
	Template      string `yaml:"template"`
	SourceExt     string `yaml:"source_ext"`
	Manifest      string `yaml:"manifest"`
	LibDependency string `yaml:"lib_dependency"`
	GeneratorBin  string `yaml:"generator_bin"`

	// Source is the file the config was read from, empty for built-in defaults.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Version:       1,
		BuildTool:     "cargo",
		Prefix:        "day",
		Template:      filepath.Join("scripts", "template.rs"),
		SourceExt:     "rs",
		Manifest:      "Cargo.toml",
		LibDependency: "aoc-lib",
		GeneratorBin:  "aoc",
	}
}

// withDefaults fills every empty field from Default.
func (c Config) withDefaults() Config {
	d := Default()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.BuildTool == "" {
		c.BuildTool = d.BuildTool
	}
	if c.Prefix == "" {
		c.Prefix = d.Prefix
	}
	if c.Template == "" {
		c.Template = d.Template
	}
	if c.SourceExt == "" {
		c.SourceExt = d.SourceExt
	}
	if c.Manifest == "" {
		c.Manifest = d.Manifest
	}
	if c.LibDependency == "" {
		c.LibDependency = d.LibDependency
	}
	if c.GeneratorBin == "" {
		c.GeneratorBin = d.GeneratorBin
	}
	return c
}

// TemplatePath resolves the template against the workspace root unless it is absolute.
func (c Config) TemplatePath(root string) string {
	if filepath.IsAbs(c.Template) {
		return c.Template
	}
	return filepath.Join(root, c.Template)
}
