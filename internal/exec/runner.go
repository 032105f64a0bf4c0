// Package exec runs external commands with captured output behind a stubbable interface.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// CmdResult holds the captured result of a finished command.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// OK reports whether the command exited with status 0.
func (r CmdResult) OK() bool {
	return r.ExitCode == 0
}

// RunOpts holds optional parameters for command execution.
type RunOpts struct {
	Dir string            // working directory (optional)
	Env map[string]string // extra environment variables (overlay)
}

// CommandRunner is the interface for running external commands.
type CommandRunner interface {
	// Run executes a command, blocks until it exits, and returns its captured output.
	// A non-zero exit is reported through CmdResult.ExitCode with a nil error.
	// The error is non-nil only when the process could not be run
	// (binary not found, ctx canceled, io failure).
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
}

// RealRunner is the os/exec implementation of CommandRunner.
type RealRunner struct {
	log *zap.Logger
}

// NewRealRunner creates a new RealRunner. A nil logger disables logging.
func NewRealRunner(log *zap.Logger) *RealRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &RealRunner{log: log}
}

// Run executes the command with stdout and stderr captured into buffers.
func (r *RealRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	start := time.Now()
	err := cmd.Run()

	result := CmdResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			r.logDone(name, args, opts.Dir, result.ExitCode, start)
			return result, nil
		}
		r.log.Debug("command failed to run",
			zap.String("cmd", name),
			zap.Strings("args", args),
			zap.Error(err))
		return result, err
	}

	r.logDone(name, args, opts.Dir, 0, start)
	return result, nil
}

func (r *RealRunner) logDone(name string, args []string, dir string, code int, start time.Time) {
	r.log.Debug("command finished",
		zap.String("cmd", name),
		zap.Strings("args", args),
		zap.String("dir", dir),
		zap.Int("exit_code", code),
		zap.Duration("elapsed", time.Since(start)))
}

// IsNotFound reports whether err means the binary could not be located.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
