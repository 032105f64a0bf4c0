// Package core holds the naming rules shared by the advent commands.
package core

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NielsdaWheelz/advent/internal/errors"
)

// ProjectID identifies one solution project: a period (the event year) and a
// sequence number (the day) within it.
type ProjectID struct {
	Period   int
	Sequence int
}

// ParseProjectID parses the two positional command-line arguments.
// Both must be non-negative base-10 integers; anything else is E_USAGE.
func ParseProjectID(period, sequence string) (ProjectID, error) {
	p, err := parseNonNegative("period", period)
	if err != nil {
		return ProjectID{}, err
	}
	s, err := parseNonNegative("day", sequence)
	if err != nil {
		return ProjectID{}, err
	}
	return ProjectID{Period: p, Sequence: s}, nil
}

func parseNonNegative(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New(errors.EUsage, fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	if n < 0 {
		return 0, errors.New(errors.EUsage, fmt.Sprintf("%s must not be negative, got %d", name, n))
	}
	return n, nil
}

// String returns "<period>/<sequence>", used in log fields and messages.
func (id ProjectID) String() string {
	return fmt.Sprintf("%d/%d", id.Period, id.Sequence)
}

// PeriodDir returns the directory holding every project of the period, relative to the workspace root.
func (id ProjectID) PeriodDir() string {
	return strconv.Itoa(id.Period)
}

// Dir returns "<period>/<prefix>-<sequence>" relative to the workspace root.
func (id ProjectID) Dir(prefix string) string {
	return filepath.Join(id.PeriodDir(), fmt.Sprintf("%s-%d", prefix, id.Sequence))
}

// BinName returns "<prefix>-<sequence>-<period>", the package and binary name.
func (id ProjectID) BinName(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, id.Sequence, id.Period)
}

// MainFile returns "<period>/<prefix>-<sequence>/src/main.<ext>".
func (id ProjectID) MainFile(prefix, ext string) string {
	return filepath.Join(id.Dir(prefix), "src", "main."+ext)
}

// ManifestFile returns the manifest path inside the project directory.
func (id ProjectID) ManifestFile(prefix, manifest string) string {
	return filepath.Join(id.Dir(prefix), manifest)
}
