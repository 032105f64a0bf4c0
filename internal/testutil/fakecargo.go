// Package testutil provides test doubles shared by advent package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	adventexec "github.com/NielsdaWheelz/advent/internal/exec"
)

// HelloWorld is the src/main.rs that `cargo new --bin` generates.
const HelloWorld = "fn main() {\n    println!(\"Hello, world!\");\n}\n"

// FakeCargo is an exec.CommandRunner that imitates the parts of cargo advent uses.
//
// `new --bin --name <name> <path>` creates <dir>/<path> with a Cargo.toml and a
// hello-world src/main.rs, failing with 101 if the path exists.
// `run --release --bin <bin> [-- args]` answers from Stdout/Stderr/Exit.
type FakeCargo struct {
	mu sync.Mutex

	Stdout map[string]string
	Stderr map[string]string
	Exit   map[string]int

	// NotInstalled makes every call fail as if cargo were missing from PATH.
	NotInstalled bool

	Calls [][]string
}

// NewFakeCargo returns an empty FakeCargo.
func NewFakeCargo() *FakeCargo {
	return &FakeCargo{
		Stdout: map[string]string{},
		Stderr: map[string]string{},
		Exit:   map[string]int{},
	}
}

// Run implements exec.CommandRunner.
func (f *FakeCargo) Run(_ context.Context, name string, args []string, opts adventexec.RunOpts) (adventexec.CmdResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, append([]string{name}, args...))
	if f.NotInstalled {
		return adventexec.CmdResult{}, fmt.Errorf("exec: %q: %w", name, exec.ErrNotFound)
	}
	if len(args) == 0 {
		return adventexec.CmdResult{ExitCode: 1, Stderr: "no subcommand"}, nil
	}

	switch args[0] {
	case "--version":
		return adventexec.CmdResult{Stdout: "cargo 1.83.0 (5ffbef321 2024-10-29)\n"}, nil
	case "new":
		return f.newBin(args, opts.Dir), nil
	case "run":
		bin := flagValue(args, "--bin")
		return adventexec.CmdResult{
			Stdout:   f.Stdout[bin],
			Stderr:   f.Stderr[bin],
			ExitCode: f.Exit[bin],
		}, nil
	}
	return adventexec.CmdResult{ExitCode: 1, Stderr: "error: no such command: `" + args[0] + "`"}, nil
}

func (f *FakeCargo) newBin(args []string, dir string) adventexec.CmdResult {
	name := flagValue(args, "--name")
	target := filepath.Join(dir, args[len(args)-1])
	if _, err := os.Stat(target); err == nil {
		return adventexec.CmdResult{
			ExitCode: 101,
			Stderr:   "error: destination `" + target + "` already exists\n",
		}
	}
	if err := os.MkdirAll(filepath.Join(target, "src"), 0755); err != nil {
		return adventexec.CmdResult{ExitCode: 101, Stderr: err.Error()}
	}
	toml := fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n", name)
	if err := os.WriteFile(filepath.Join(target, "Cargo.toml"), []byte(toml), 0644); err != nil {
		return adventexec.CmdResult{ExitCode: 101, Stderr: err.Error()}
	}
	if err := os.WriteFile(filepath.Join(target, "src", "main.rs"), []byte(HelloWorld), 0644); err != nil {
		return adventexec.CmdResult{ExitCode: 101, Stderr: err.Error()}
	}
	return adventexec.CmdResult{Stderr: "    Creating binary (application) `" + name + "` package\n"}
}

// Subcommands returns the first argument of every recorded call.
func (f *FakeCargo) Subcommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		if len(c) > 1 {
			out = append(out, c[1])
		}
	}
	return out
}

func flagValue(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
