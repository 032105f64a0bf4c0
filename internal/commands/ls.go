package commands

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/manifest"
	"github.com/NielsdaWheelz/advent/internal/render"
	"github.com/NielsdaWheelz/advent/internal/status"
)

// LSOpts holds options for the ls command.
type LSOpts struct {
	// Period restricts the listing to one period; 0 lists every period.
	Period int

	// JSON selects the JSON envelope instead of columns.
	JSON bool
}

// LS implements `advent ls`: every <period>/<prefix>-<day> directory in the
// workspace, ordered by period then day, with its derived status.
func LS(_ context.Context, ws Workspace, opts LSOpts, stdout, stderr io.Writer) error {
	ids, err := scanProjects(ws, opts.Period)
	if err != nil {
		return err
	}

	// a missing template only means nothing is "untouched"
	template, err := ws.FS.ReadFile(ws.Cfg.TemplatePath(ws.Root))
	if err != nil {
		ws.logger().Debug("template unreadable", zap.Error(err))
	}

	summaries := make([]render.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, render.ProjectSummary{
			Period: id.Period,
			Day:    id.Sequence,
			Binary: id.BinName(ws.Cfg.Prefix),
			Dir:    id.Dir(ws.Cfg.Prefix),
			Status: status.Derive(snapshot(ws, id, template)),
		})
	}

	if opts.JSON {
		if err := render.WriteLSJSON(stdout, summaries); err != nil {
			return errors.Wrap(errors.EInternal, "failed to write json output", err)
		}
		return nil
	}
	if err := render.WriteLSHuman(stdout, render.FormatHumanRows(summaries)); err != nil {
		return errors.Wrap(errors.EInternal, "failed to write output", err)
	}
	return nil
}

// scanProjects finds project directories. Entries that do not follow the
// naming convention are ignored.
func scanProjects(ws Workspace, onlyPeriod int) ([]core.ProjectID, error) {
	entries, err := ws.FS.ReadDir(ws.Root)
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to read workspace "+ws.Root, err)
	}

	var ids []core.ProjectID
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		period, ok := parseNonNegative(e.Name())
		if !ok || e.Name() != strconv.Itoa(period) || (onlyPeriod != 0 && period != onlyPeriod) {
			continue
		}
		days, err := ws.FS.ReadDir(filepath.Join(ws.Root, e.Name()))
		if err != nil {
			return nil, errors.Wrap(errors.EInternal, "failed to read "+e.Name(), err)
		}
		for _, d := range days {
			if !d.IsDir() {
				continue
			}
			name, found := strings.CutPrefix(d.Name(), ws.Cfg.Prefix+"-")
			if !found {
				continue
			}
			seq, ok := parseNonNegative(name)
			if !ok || name != strconv.Itoa(seq) {
				continue
			}
			ids = append(ids, core.ProjectID{Period: period, Sequence: seq})
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Period != ids[j].Period {
			return ids[i].Period < ids[j].Period
		}
		return ids[i].Sequence < ids[j].Sequence
	})
	return ids, nil
}

// parseNonNegative accepts plain decimal digits only.
func parseNonNegative(s string) (int, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func snapshot(ws Workspace, id core.ProjectID, template []byte) status.Snapshot {
	var snap status.Snapshot

	if m, err := manifest.Load(ws.FS, filepath.Join(ws.Root, id.ManifestFile(ws.Cfg.Prefix, ws.Cfg.Manifest))); err == nil {
		snap.ManifestValid = true
		snap.InheritsLib = m.InheritsWorkspace(ws.Cfg.LibDependency)
	}

	main, err := ws.FS.ReadFile(filepath.Join(ws.Root, id.MainFile(ws.Cfg.Prefix, ws.Cfg.SourceExt)))
	if err == nil {
		snap.MainPresent = true
		snap.MainMatchesTemplate = template != nil && bytes.Equal(main, template)
	}
	return snap
}
