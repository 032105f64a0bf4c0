// Package cargo invokes the external build tool on behalf of the advent commands.
package cargo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/exec"
)

// maxStderrDetail bounds the stderr tail carried in error details.
const maxStderrDetail = 2000

// Tool runs one build tool binary from a fixed workspace directory.
type Tool struct {
	Runner exec.CommandRunner
	Bin    string // e.g. "cargo"
	Dir    string // workspace root
	Log    *zap.Logger
}

// New returns a Tool. A nil logger disables logging.
func New(cr exec.CommandRunner, bin, dir string, log *zap.Logger) *Tool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tool{Runner: cr, Bin: bin, Dir: dir, Log: log}
}

// Invoke runs the build tool with args, capturing stdout, stderr and exit status.
// It blocks until the child exits. A non-zero exit is not an error here;
// the error is E_BUILD_TOOL_NOT_FOUND when the binary is missing, otherwise
// E_INTERNAL when the process could not be run at all.
func (t *Tool) Invoke(ctx context.Context, args ...string) (exec.CmdResult, error) {
	line := core.FormatCommand(t.Bin, args)
	t.Log.Debug("invoking build tool", zap.String("cmd", line), zap.String("dir", t.Dir))

	start := time.Now()
	res, err := t.Runner.Run(ctx, t.Bin, args, exec.RunOpts{Dir: t.Dir})
	if err != nil {
		if exec.IsNotFound(err) {
			return res, errors.WrapWithDetails(errors.EBuildToolNotFound,
				t.Bin+" is not installed or not on PATH", err, map[string]string{"cmd": line})
		}
		return res, errors.WrapWithDetails(errors.EInternal,
			"failed to run "+t.Bin, err, map[string]string{"cmd": line})
	}

	t.Log.Debug("build tool exited",
		zap.String("cmd", line),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// NewBin generates a binary project at path (relative to Dir) named name.
// A non-zero exit returns E_BUILD_TOOL_FAILED.
func (t *Tool) NewBin(ctx context.Context, name, path string) error {
	args := []string{"new", "--bin", "--name", name, path}
	res, err := t.Invoke(ctx, args...)
	if err != nil {
		return err
	}
	return t.check(errors.EBuildToolFailed, args, res)
}

// RunRelease builds bin in release mode and runs it with binArgs.
// The result is returned as captured, including on non-zero exit.
func (t *Tool) RunRelease(ctx context.Context, bin string, binArgs ...string) (exec.CmdResult, error) {
	return t.Invoke(ctx, ReleaseArgs(bin, binArgs...)...)
}

// RunGenerator runs the one-time per-project generator binary for id.
// A non-zero exit returns E_BUILD_TOOL_FAILED.
func (t *Tool) RunGenerator(ctx context.Context, generator string, id core.ProjectID) error {
	binArgs := []string{strconv.Itoa(id.Period), strconv.Itoa(id.Sequence)}
	res, err := t.RunRelease(ctx, generator, binArgs...)
	if err != nil {
		return err
	}
	return t.check(errors.EBuildToolFailed, ReleaseArgs(generator, binArgs...), res)
}

// Version returns the first line of `<bin> --version`.
func (t *Tool) Version(ctx context.Context) (string, error) {
	args := []string{"--version"}
	res, err := t.Invoke(ctx, args...)
	if err != nil {
		return "", err
	}
	if err := t.check(errors.EBuildToolNotFound, args, res); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.SplitN(res.Stdout, "\n", 2)[0]), nil
}

// ReleaseArgs returns the argv for `run --release --bin <bin> [-- binArgs...]`.
func ReleaseArgs(bin string, binArgs ...string) []string {
	args := []string{"run", "--release", "--bin", bin}
	if len(binArgs) > 0 {
		args = append(args, "--")
		args = append(args, binArgs...)
	}
	return args
}

// check converts a non-zero exit into an error carrying code.
func (t *Tool) check(code errors.Code, args []string, res exec.CmdResult) error {
	if res.OK() {
		return nil
	}
	return ExitError(code, t.Bin, args, res)
}

// ExitError builds the error reported for a build tool call that exited non-zero.
func ExitError(code errors.Code, bin string, args []string, res exec.CmdResult) error {
	line := core.FormatCommand(bin, args)
	return errors.NewWithDetails(code,
		line+" exited with status "+strconv.Itoa(res.ExitCode),
		map[string]string{
			"cmd":       line,
			"exit_code": strconv.Itoa(res.ExitCode),
			"stderr":    StderrTail(res.Stderr),
		})
}

// StderrTail trims stderr to its last maxStderrDetail bytes.
func StderrTail(stderr string) string {
	s := strings.TrimSpace(stderr)
	if len(s) > maxStderrDetail {
		s = "..." + s[len(s)-maxStderrDetail:]
	}
	return s
}
