package config

import (
	"strings"
	"unicode"

	"github.com/NielsdaWheelz/advent/internal/errors"
)

// Validate checks a defaulted config and returns it unchanged on success.
// Returns E_INVALID_CONFIG naming the first offending field.
func Validate(cfg Config) (Config, error) {
	if cfg.Version != 1 {
		return cfg, errors.New(errors.EInvalidConfig, "version must be 1")
	}

	tokens := []struct {
		field string
		value string
	}{
		{"build_tool", cfg.BuildTool},
		{"prefix", cfg.Prefix},
		{"generator_bin", cfg.GeneratorBin},
		{"lib_dependency", cfg.LibDependency},
		{"source_ext", cfg.SourceExt},
	}
	for _, tok := range tokens {
		if containsWhitespace(tok.value) {
			return cfg, errors.New(errors.EInvalidConfig, tok.field+" must be a single token (no whitespace)")
		}
	}

	if strings.HasPrefix(cfg.SourceExt, ".") {
		return cfg, errors.New(errors.EInvalidConfig, "source_ext must not start with a dot")
	}
	if strings.ContainsAny(cfg.Prefix, `/\`) {
		return cfg, errors.New(errors.EInvalidConfig, "prefix must not contain path separators")
	}
	if strings.ContainsAny(cfg.Manifest, `/\`) {
		return cfg, errors.New(errors.EInvalidConfig, "manifest must be a file name, not a path")
	}

	return cfg, nil
}

func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
