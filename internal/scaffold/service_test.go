package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/NielsdaWheelz/advent/internal/cargo"
	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/manifest"
	"github.com/NielsdaWheelz/advent/internal/pipeline"
	"github.com/NielsdaWheelz/advent/internal/testutil"
)

func readTemplate(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "template.rs"))
	require.NoError(t, err)
	return data
}

// setupWorkspace creates a workspace root holding scripts/template.rs.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scripts", "template.rs"), readTemplate(t), 0644))
	return root
}

func newTestService(t *testing.T, root string, fc *testutil.FakeCargo) *Service {
	t.Helper()
	log := zaptest.NewLogger(t)
	tool := cargo.New(fc, "cargo", root, log)
	return NewService(root, config.Default(), fs.NewRealFS(), tool, log)
}

func TestPipeline_CreatesProject(t *testing.T) {
	root := setupWorkspace(t)
	fc := testutil.NewFakeCargo()
	svc := newTestService(t, root, fc)

	st, err := pipeline.NewPipeline(svc, nil).Run(context.Background(), core.ProjectID{Period: 2023, Sequence: 1})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "2023"), st.PeriodDir)
	assert.Equal(t, filepath.Join("2023", "day-1"), st.ProjectDir)
	assert.Equal(t, "day-1-2023", st.BinName)

	main, err := os.ReadFile(filepath.Join(root, "2023", "day-1", "src", "main.rs"))
	require.NoError(t, err)
	assert.Equal(t, readTemplate(t), main)
	assert.Equal(t, filepath.Join(root, "2023", "day-1", "src", "main.rs"), st.MainFile)

	m, err := manifest.Load(fs.NewRealFS(), filepath.Join(root, "2023", "day-1", "Cargo.toml"))
	require.NoError(t, err)
	assert.True(t, m.InheritsWorkspace("aoc-lib"))

	assert.Equal(t, [][]string{
		{"cargo", "new", "--bin", "--name", "day-1-2023", filepath.Join("2023", "day-1")},
		{"cargo", "run", "--release", "--bin", "aoc", "--", "2023", "1"},
	}, fc.Calls)
}

func TestEnsurePeriodDir_Idempotent(t *testing.T) {
	root := setupWorkspace(t)
	svc := newTestService(t, root, testutil.NewFakeCargo())

	for i := 0; i < 2; i++ {
		st := &pipeline.State{ID: core.ProjectID{Period: 2024, Sequence: 3}}
		require.NoError(t, svc.EnsurePeriodDir(context.Background(), st))
		assert.True(t, fs.IsDir(svc.FS, st.PeriodDir))
	}
}

func TestPipeline_SecondCreateFailsInGenerateNotInMkdir(t *testing.T) {
	root := setupWorkspace(t)
	fc := testutil.NewFakeCargo()
	svc := newTestService(t, root, fc)
	id := core.ProjectID{Period: 2023, Sequence: 1}

	_, err := pipeline.NewPipeline(svc, nil).Run(context.Background(), id)
	require.NoError(t, err)

	_, err = pipeline.NewPipeline(svc, nil).Run(context.Background(), id)
	require.Error(t, err)
	ae, ok := errors.AsAdventError(err)
	require.True(t, ok)
	assert.Equal(t, errors.EBuildToolFailed, ae.Code)
	assert.Contains(t, ae.Details["stderr"], "already exists")
}

func TestCopyTemplate_OverwritesExistingMain(t *testing.T) {
	root := setupWorkspace(t)
	svc := newTestService(t, root, testutil.NewFakeCargo())
	id := core.ProjectID{Period: 2025, Sequence: 9}

	mainPath := filepath.Join(root, id.MainFile("day", "rs"))
	require.NoError(t, os.MkdirAll(filepath.Dir(mainPath), 0755))
	require.NoError(t, os.WriteFile(mainPath, []byte("// my half-finished solution\n"), 0644))

	st := &pipeline.State{ID: id}
	require.NoError(t, svc.CopyTemplate(context.Background(), st))

	got, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.Equal(t, readTemplate(t), got)

	entries, err := os.ReadDir(filepath.Dir(mainPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no backup or temp file is left next to main.rs")
}

func TestCopyTemplate_MissingTemplate(t *testing.T) {
	root := t.TempDir()
	svc := newTestService(t, root, testutil.NewFakeCargo())

	err := svc.CopyTemplate(context.Background(), &pipeline.State{ID: core.ProjectID{Period: 2023, Sequence: 1}})
	require.Error(t, err)
	assert.Equal(t, errors.ETemplateNotFound, errors.GetCode(err))
}

func TestCopyTemplate_CustomExtension(t *testing.T) {
	root := setupWorkspace(t)
	svc := newTestService(t, root, testutil.NewFakeCargo())
	svc.Cfg.SourceExt = "txt"

	st := &pipeline.State{ID: core.ProjectID{Period: 2023, Sequence: 2}}
	require.NoError(t, svc.CopyTemplate(context.Background(), st))
	assert.Equal(t, filepath.Join(root, "2023", "day-2", "src", "main.txt"), st.MainFile)
}

func TestUpdateManifest_MissingManifest(t *testing.T) {
	root := setupWorkspace(t)
	svc := newTestService(t, root, testutil.NewFakeCargo())

	err := svc.UpdateManifest(context.Background(), &pipeline.State{ID: core.ProjectID{Period: 2023, Sequence: 4}})
	assert.Equal(t, errors.EManifestNotFound, errors.GetCode(err))
}

func TestUpdateManifest_MalformedManifest(t *testing.T) {
	root := setupWorkspace(t)
	svc := newTestService(t, root, testutil.NewFakeCargo())
	id := core.ProjectID{Period: 2023, Sequence: 4}

	path := filepath.Join(root, id.ManifestFile("day", "Cargo.toml"))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[package\n"), 0644))

	err := svc.UpdateManifest(context.Background(), &pipeline.State{ID: id})
	assert.Equal(t, errors.EManifestInvalid, errors.GetCode(err))
}

func TestPipeline_GeneratorFailureIsFatal(t *testing.T) {
	root := setupWorkspace(t)
	fc := testutil.NewFakeCargo()
	fc.Exit["aoc"] = 1
	fc.Stderr["aoc"] = "Error: NotPresent"
	svc := newTestService(t, root, fc)

	_, err := pipeline.NewPipeline(svc, nil).Run(context.Background(), core.ProjectID{Period: 2023, Sequence: 5})
	require.Error(t, err)
	assert.Equal(t, errors.EBuildToolFailed, errors.GetCode(err))

	// the project itself was still fully scaffolded before the generator ran
	m, err := manifest.Load(fs.NewRealFS(), filepath.Join(root, "2023", "day-5", "Cargo.toml"))
	require.NoError(t, err)
	assert.True(t, m.InheritsWorkspace("aoc-lib"))
}

func TestPipeline_CargoMissing(t *testing.T) {
	root := setupWorkspace(t)
	fc := testutil.NewFakeCargo()
	fc.NotInstalled = true
	svc := newTestService(t, root, fc)

	_, err := pipeline.NewPipeline(svc, nil).Run(context.Background(), core.ProjectID{Period: 2023, Sequence: 1})
	assert.Equal(t, errors.EBuildToolNotFound, errors.GetCode(err))
	assert.True(t, fs.IsDir(svc.FS, filepath.Join(root, "2023")), "period dir is created before cargo runs")
}
