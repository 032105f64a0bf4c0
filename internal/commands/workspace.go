// Package commands implements the advent CLI commands.
package commands

import (
	"os"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/cargo"
	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/exec"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// Workspace is what every command operates on: a root directory, its resolved
// config and the side-effecting dependencies.
type Workspace struct {
	Root   string
	Cfg    config.Config
	FS     fs.FS
	Runner exec.CommandRunner
	Log    *zap.Logger
}

func (w Workspace) logger() *zap.Logger {
	if w.Log == nil {
		return zap.NewNop()
	}
	return w.Log
}

// tool binds the configured build tool to the workspace root.
func (w Workspace) tool() *cargo.Tool {
	return cargo.New(w.Runner, w.Cfg.BuildTool, w.Root, w.logger())
}

// OSEnv implements paths.Env using os.Getenv.
type OSEnv struct{}

func (OSEnv) Get(key string) string {
	return os.Getenv(key)
}
