// Package scaffold implements the steps that turn a (period, day) pair into a
// ready-to-edit solution project.
package scaffold

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/cargo"
	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/manifest"
	"github.com/NielsdaWheelz/advent/internal/pipeline"
)

// Service implements pipeline.ScaffoldService against a workspace root.
type Service struct {
	Root string
	Cfg  config.Config
	FS   fs.FS
	Tool *cargo.Tool
	Log  *zap.Logger
}

var _ pipeline.ScaffoldService = (*Service)(nil)

// NewService returns a Service. A nil logger disables logging.
func NewService(root string, cfg config.Config, fsys fs.FS, tool *cargo.Tool, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Root: root, Cfg: cfg, FS: fsys, Tool: tool, Log: log}
}

// EnsurePeriodDir creates <root>/<period>. Existing directories are fine.
func (s *Service) EnsurePeriodDir(_ context.Context, st *pipeline.State) error {
	dir := filepath.Join(s.Root, st.ID.PeriodDir())
	if err := s.FS.MkdirAll(dir, 0755); err != nil {
		return errors.WrapWithDetails(errors.EDirCreateFailed,
			"failed to create "+dir, err, map[string]string{"path": dir})
	}
	st.PeriodDir = dir
	return nil
}

// GenerateProject runs `cargo new --bin --name <bin> <period>/<prefix>-<day>`.
func (s *Service) GenerateProject(ctx context.Context, st *pipeline.State) error {
	st.ProjectDir = st.ID.Dir(s.Cfg.Prefix)
	st.BinName = st.ID.BinName(s.Cfg.Prefix)
	return s.Tool.NewBin(ctx, st.BinName, st.ProjectDir)
}

// CopyTemplate copies the template over src/main.<ext>.
func (s *Service) CopyTemplate(_ context.Context, st *pipeline.State) error {
	src := s.Cfg.TemplatePath(s.Root)
	dst := filepath.Join(s.Root, st.ID.MainFile(s.Cfg.Prefix, s.Cfg.SourceExt))

	if err := CopyTemplate(s.FS, src, dst); err != nil {
		return err
	}
	s.Log.Debug("template copied", zap.String("src", src), zap.String("dst", dst))
	st.MainFile = dst
	return nil
}

// UpdateManifest sets dependencies.<lib> = { workspace = true }.
func (s *Service) UpdateManifest(_ context.Context, st *pipeline.State) error {
	path := filepath.Join(s.Root, st.ID.ManifestFile(s.Cfg.Prefix, s.Cfg.Manifest))

	m, err := manifest.Load(s.FS, path)
	if err != nil {
		return err
	}
	if err := m.SetWorkspaceDependency(s.Cfg.LibDependency); err != nil {
		return err
	}
	if err := m.Save(s.FS, path); err != nil {
		return err
	}
	s.Log.Debug("manifest updated",
		zap.String("path", path),
		zap.String("dependency", s.Cfg.LibDependency))
	st.ManifestFile = path
	return nil
}

// RunGenerator runs the generator binary with <period> <day>.
func (s *Service) RunGenerator(ctx context.Context, st *pipeline.State) error {
	return s.Tool.RunGenerator(ctx, s.Cfg.GeneratorBin, st.ID)
}

// CopyTemplate copies src to dst byte for byte, overwriting dst.
// The destination directory is created when missing.
// Returns E_TEMPLATE_NOT_FOUND if src does not exist.
func CopyTemplate(fsys fs.FS, src, dst string) error {
	if _, err := fsys.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return errors.NewWithDetails(errors.ETemplateNotFound,
				"template not found: "+src, map[string]string{"path": src})
		}
		return errors.Wrap(errors.ETemplateNotFound, "failed to stat template "+src, err)
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrap(errors.EDirCreateFailed, "failed to create "+filepath.Dir(dst), err)
	}
	if err := fs.CopyFile(fsys, src, dst, 0644); err != nil {
		return errors.Wrap(errors.EWriteFailed, "failed to copy template to "+dst, err)
	}
	return nil
}
