package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/NielsdaWheelz/advent/internal/cargo"
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// RunOpts holds options for the run command.
type RunOpts struct {
	ID core.ProjectID
}

// Run implements `advent run <period> <day>`.
//
// The project's binary is built and run in release mode from the workspace
// root. Its captured stdout is written to stdout unchanged, also when it
// exits non-zero; in that case its stderr follows on stderr and the command
// fails with E_RUN_FAILED.
func Run(ctx context.Context, ws Workspace, opts RunOpts, stdout, stderr io.Writer) error {
	rel := opts.ID.Dir(ws.Cfg.Prefix)
	dir := filepath.Join(ws.Root, rel)
	if !fs.IsDir(ws.FS, dir) {
		return errors.NewWithDetails(errors.EProjectNotFound,
			fmt.Sprintf("no project for %s at %s", opts.ID, dir),
			map[string]string{
				"path": dir,
				"hint": fmt.Sprintf("advent new %d %d", opts.ID.Period, opts.ID.Sequence),
			})
	}

	bin := opts.ID.BinName(ws.Cfg.Prefix)
	res, err := ws.tool().RunRelease(ctx, bin)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(stdout, res.Stdout); err != nil {
		return errors.Wrap(errors.EInternal, "failed to write output", err)
	}

	if !res.OK() {
		if res.Stderr != "" {
			io.WriteString(stderr, res.Stderr)
		}
		return cargo.ExitError(errors.ERunFailed, ws.Cfg.BuildTool, cargo.ReleaseArgs(bin), res)
	}
	return nil
}
