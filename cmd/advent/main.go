// Command advent scaffolds and runs per-day Advent of Code solution projects.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/NielsdaWheelz/advent/internal/cli"
	"github.com/NielsdaWheelz/advent/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(os.Stdout, os.Stderr)
	err := app.Run(ctx, os.Args[1:])
	if err != nil {
		if app.Verbose() {
			errors.PrintVerbose(os.Stderr, err)
		} else {
			errors.Print(os.Stderr, err)
		}
		stop()
		os.Exit(errors.ExitCode(err))
	}
}
