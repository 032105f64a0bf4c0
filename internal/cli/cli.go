// Package cli builds the advent command tree and wires real dependencies into the commands.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NielsdaWheelz/advent/internal/commands"
	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/exec"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/paths"
	"github.com/NielsdaWheelz/advent/internal/workspace"
)

const longHelp = `advent scaffolds and runs per-day Advent of Code solution projects
inside a cargo workspace.

  advent new 2023 1    create 2023/day-1 from scripts/template.rs
  advent run 2023 1    build and run day-1-2023 in release mode
  advent ls            list projects and whether they have been worked on
  advent doctor        check cargo, the workspace manifest and the template`

// App holds the process-level dependencies of the CLI.
// Zero-valued fields fall back to the real implementations.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	Runner exec.CommandRunner
	Env    paths.Env

	// HomeDir defaults to os.UserHomeDir.
	HomeDir func() (string, error)

	configPath string
	dir        string
	verbose    bool

	log *zap.Logger
}

// NewApp returns an App writing to stdout and stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{Stdout: stdout, Stderr: stderr}
}

// Verbose reports whether --verbose was given on the last Run.
func (a *App) Verbose() bool {
	return a.verbose
}

// Run parses args and executes the matching command.
// Every returned error is an *errors.AdventError; cobra's own argument and
// flag errors are reported as E_USAGE.
func (a *App) Run(ctx context.Context, args []string) error {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root := a.newRootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAdventError(err); ok {
		return err
	}
	return errors.Wrap(errors.EUsage, err.Error(), err)
}

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "advent",
		Short:         "Scaffold and run Advent of Code solution projects",
		Long:          longHelp,
		Version:       Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = a.newLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return errors.New(errors.EUsage, "no command specified")
		},
	}
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	root.SetVersionTemplate("advent {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: <dir>/advent.yaml, then the user config dir)")
	pf.StringVarP(&a.dir, "dir", "C", "", "workspace root (default: current directory)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and error details")

	root.AddCommand(a.newNewCmd(), a.newRunCmd(), a.newLSCmd(), a.newDoctorCmd())
	return root
}

func (a *App) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <period> <day>",
		Short: "Create <period>/day-<day> from the template and register it in the workspace",
		Example: "  advent new 2023 1\n" +
			"  advent -C ~/aoc new 2024 25",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseProjectID(args[0], args[1])
			if err != nil {
				return err
			}
			ws, _, err := a.workspace()
			if err != nil {
				return err
			}
			return commands.New(cmd.Context(), ws, commands.NewOpts{ID: id}, a.Stdout, a.Stderr)
		},
	}
}

func (a *App) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "run <period> <day>",
		Short:   "Build and run an existing project in release mode, printing its output",
		Example: "  advent run 2023 1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseProjectID(args[0], args[1])
			if err != nil {
				return err
			}
			ws, _, err := a.workspace()
			if err != nil {
				return err
			}
			return commands.Run(cmd.Context(), ws, commands.RunOpts{ID: id}, a.Stdout, a.Stderr)
		},
	}
}

func (a *App) newLSCmd() *cobra.Command {
	var opts commands.LSOpts
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the projects in the workspace with their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Period < 0 {
				return errors.New(errors.EUsage, "--period must not be negative")
			}
			ws, _, err := a.workspace()
			if err != nil {
				return err
			}
			return commands.LS(cmd.Context(), ws, opts, a.Stdout, a.Stderr)
		},
	}
	cmd.Flags().IntVar(&opts.Period, "period", 0, "only list this period")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "write a JSON envelope instead of columns")
	return cmd
}

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites and show the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, userDir, err := a.workspace()
			if err != nil {
				return err
			}
			return commands.Doctor(cmd.Context(), ws, userDir, a.Stdout, a.Stderr)
		},
	}
}

// workspace resolves the root, the config and the runtime dependencies.
// Without --dir the root is discovered upwards from the working directory.
// The user config dir is returned for reporting.
func (a *App) workspace() (commands.Workspace, string, error) {
	fsys := fs.NewRealFS()

	root, err := a.resolveRoot(fsys)
	if err != nil {
		return commands.Workspace{}, "", err
	}

	userDir := a.userConfigDir()
	cfg, err := config.Resolve(fsys, root, a.configPath, userDir)
	if err != nil {
		return commands.Workspace{}, "", err
	}
	a.log.Debug("workspace resolved",
		zap.String("root", root),
		zap.String("config", cfg.Source),
		zap.String("build_tool", cfg.BuildTool))

	runner := a.Runner
	if runner == nil {
		runner = exec.NewRealRunner(a.log)
	}
	return commands.Workspace{Root: root, Cfg: cfg, FS: fsys, Runner: runner, Log: a.log}, userDir, nil
}

func (a *App) resolveRoot(fsys fs.FS) (string, error) {
	if a.dir != "" {
		root, err := filepath.Abs(a.dir)
		if err != nil {
			return "", errors.Wrap(errors.EUsage, "invalid --dir "+a.dir, err)
		}
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(errors.EInternal, "failed to get working directory", err)
	}
	root, found := workspace.FindRoot(fsys, cwd)
	if !found {
		a.log.Debug("no workspace root above working directory", zap.String("cwd", cwd))
	}
	return root, nil
}

// userConfigDir returns "" when no home directory can be determined and
// ADVENT_CONFIG_DIR is unset.
func (a *App) userConfigDir() string {
	env := a.Env
	if env == nil {
		env = commands.OSEnv{}
	}
	homeDir := a.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err != nil {
		if v := env.Get(paths.ConfigDirEnv); v != "" {
			return v
		}
		return ""
	}
	return paths.ResolveConfigDir(env, home)
}

// newLogger builds the console logger on stderr: info by default, debug with --verbose.
func (a *App) newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg.EncoderConfig),
		zapcore.Lock(zapcore.AddSync(a.Stderr)),
		cfg.Level,
	))
}
