package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/lock"
	"github.com/NielsdaWheelz/advent/internal/pipeline"
	"github.com/NielsdaWheelz/advent/internal/scaffold"
)

// NewOpts holds options for the new command.
type NewOpts struct {
	ID core.ProjectID
}

// New implements `advent new <period> <day>`.
// Holds the workspace lock while the scaffolding pipeline runs, then prints
// the created paths.
func New(ctx context.Context, ws Workspace, opts NewOpts, stdout, stderr io.Writer) error {
	log := ws.logger()

	wl := lock.NewWorkspaceLock(ws.Root)
	unlock, err := wl.Lock("new " + opts.ID.String())
	if err != nil {
		var locked *lock.ErrLocked
		if stderrors.As(err, &locked) {
			return errors.WrapWithDetails(errors.EWorkspaceLocked, locked.Error(), err,
				map[string]string{"lock_file": locked.Path})
		}
		return errors.Wrap(errors.EInternal, "failed to acquire workspace lock", err)
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn("failed to release workspace lock", zap.String("path", wl.Path()), zap.Error(err))
		}
	}()

	svc := scaffold.NewService(ws.Root, ws.Cfg, ws.FS, ws.tool(), log)
	st, err := pipeline.NewPipeline(svc, log).Run(ctx, opts.ID)
	if err != nil {
		printNewError(stderr, ws.Root, st)
		return err
	}

	log.Info("project created", zap.Stringer("project", opts.ID), zap.String("binary", st.BinName))
	printNewSuccess(stdout, ws.Root, st)
	return nil
}

func printNewSuccess(w io.Writer, root string, st *pipeline.State) {
	fmt.Fprintf(w, "project_dir: %s\n", filepath.Join(root, st.ProjectDir))
	fmt.Fprintf(w, "binary: %s\n", st.BinName)
	fmt.Fprintf(w, "main_file: %s\n", st.MainFile)
	fmt.Fprintf(w, "manifest: %s\n", st.ManifestFile)
}

// printNewError reports how far scaffolding got before it failed.
func printNewError(w io.Writer, root string, st *pipeline.State) {
	if st == nil || st.ProjectDir == "" {
		return
	}
	dir := filepath.Join(root, st.ProjectDir)
	if st.ManifestFile != "" {
		fmt.Fprintf(w, "project_dir: %s (scaffolded; generator did not complete)\n", dir)
		return
	}
	fmt.Fprintf(w, "project_dir: %s (may be partially created)\n", dir)
}
