package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/adnsv/go-utils/filesystem"

	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/manifest"
)

// DoctorReport holds all the data for doctor output.
type DoctorReport struct {
	WorkspaceRoot     string
	WorkspaceManifest string
	ConfigSource      string
	UserConfigDir     string

	BuildTool        string
	BuildToolVersion string

	Template      string
	Prefix        string
	SourceExt     string
	LibDependency string
	GeneratorBin  string
}

// Doctor implements the `advent doctor` command.
// Verifies the build tool, the workspace manifest and the template,
// then prints the resolved settings.
func Doctor(ctx context.Context, ws Workspace, userConfigDir string, stdout, stderr io.Writer) error {
	// 1. Build tool
	version, err := ws.tool().Version(ctx)
	if err != nil {
		return err
	}

	// 2. Workspace manifest must declare [workspace]
	wsManifest := filepath.Join(ws.Root, ws.Cfg.Manifest)
	if err := checkWorkspaceManifest(ws, wsManifest); err != nil {
		return err
	}

	// 3. Template
	tmpl := ws.Cfg.TemplatePath(ws.Root)
	if err := filesystem.ValidateFileExists(tmpl); err != nil {
		return errors.WrapWithDetails(errors.ETemplateNotFound,
			"template not found: "+tmpl, err, map[string]string{"path": tmpl})
	}

	source := ws.Cfg.Source
	if source == "" {
		source = "(defaults)"
	}

	writeDoctorOutput(stdout, DoctorReport{
		WorkspaceRoot:     ws.Root,
		WorkspaceManifest: wsManifest,
		ConfigSource:      source,
		UserConfigDir:     userConfigDir,
		BuildTool:         ws.Cfg.BuildTool,
		BuildToolVersion:  version,
		Template:          tmpl,
		Prefix:            ws.Cfg.Prefix,
		SourceExt:         ws.Cfg.SourceExt,
		LibDependency:     ws.Cfg.LibDependency,
		GeneratorBin:      ws.Cfg.GeneratorBin,
	})
	return nil
}

func checkWorkspaceManifest(ws Workspace, path string) error {
	m, err := manifest.Load(ws.FS, path)
	if err != nil {
		return err
	}
	if !m.IsWorkspace() {
		return errors.NewWithDetails(errors.EManifestInvalid,
			path+" has no [workspace] table", map[string]string{"path": path})
	}
	return nil
}

// writeDoctorOutput writes the stable key: value output.
func writeDoctorOutput(w io.Writer, r DoctorReport) {
	fmt.Fprintf(w, "workspace_root: %s\n", r.WorkspaceRoot)
	fmt.Fprintf(w, "workspace_manifest: %s\n", r.WorkspaceManifest)
	fmt.Fprintf(w, "config_source: %s\n", r.ConfigSource)
	fmt.Fprintf(w, "user_config_dir: %s\n", r.UserConfigDir)

	fmt.Fprintf(w, "build_tool: %s\n", r.BuildTool)
	fmt.Fprintf(w, "build_tool_version: %s\n", r.BuildToolVersion)

	fmt.Fprintf(w, "template: %s\n", r.Template)
	fmt.Fprintf(w, "prefix: %s\n", r.Prefix)
	fmt.Fprintf(w, "source_ext: %s\n", r.SourceExt)
	fmt.Fprintf(w, "lib_dependency: %s\n", r.LibDependency)
	fmt.Fprintf(w, "generator_bin: %s\n", r.GeneratorBin)

	fmt.Fprintln(w, "status: ok")
}
