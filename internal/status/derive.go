// Package status derives the state of a solution project from a snapshot of
// what is on disk. No filesystem calls are made in this package.
package status

// Derived status strings (user-visible in `advent ls`).
const (
	StatusBroken       = "broken"
	StatusUnregistered = "unregistered"
	StatusUntouched    = "untouched"
	StatusInProgress   = "in progress"
)

// Snapshot contains the local inputs for status derivation.
// The caller computes them from the project directory.
type Snapshot struct {
	// ManifestValid is true iff the project manifest exists and parses.
	ManifestValid bool

	// InheritsLib is true iff the manifest marks the shared library
	// dependency as workspace-inherited.
	InheritsLib bool

	// MainPresent is true iff src/main.<ext> exists.
	MainPresent bool

	// MainMatchesTemplate is true iff src/main.<ext> is byte-identical to the template.
	MainMatchesTemplate bool
}

// Derive computes the project status. Precedence:
//  1. broken: manifest missing or unparseable, or no main file
//  2. unregistered: the library dependency is not inherited (scaffolding stopped early)
//  3. untouched: main file still equals the template
//  4. in progress
func Derive(in Snapshot) string {
	switch {
	case !in.ManifestValid || !in.MainPresent:
		return StatusBroken
	case !in.InheritsLib:
		return StatusUnregistered
	case in.MainMatchesTemplate:
		return StatusUntouched
	default:
		return StatusInProgress
	}
}
