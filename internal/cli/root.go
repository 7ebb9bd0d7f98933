// Package cli handles command-line parsing and dispatch for mazegen.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NielsdaWheelz/mazegen/internal/config"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/version"
)

const rootLong = `mazegen turns Maze experiment stimulus files into PCIbex scripts.

JSON materials (one array of records per file) become one script per file.
Text materials (one near-JSON record per line) become a single script that
samples items per participant at runtime.

Settings come from mazegen.yaml when present; flags override them.`

// app carries per-invocation state shared by the subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	fsys   fs.FS
	log    *zap.Logger

	configPath string
	verbose    bool
}

// Run parses arguments and dispatches to the appropriate subcommand.
// Returns an error if the command fails; the caller should print the error and exit.
// Errors raised by argument parsing are returned as E_USAGE.
func Run(args []string, stdout, stderr io.Writer) error {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		fsys:   fs.NewRealFS(),
		log:    zap.NewNop(),
	}
	defer func() { _ = a.log.Sync() }()

	root := a.newRootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return nil
	}
	if _, ok := errors.AsGenError(err); ok {
		return err
	}
	return errors.Wrap(errors.EUsage, err.Error(), err)
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mazegen",
		Short:         "Generate PCIbex Maze experiment scripts from stimulus files",
		Long:          rootLong,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = newLogger(a.stderr, a.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.EUsage, "no command specified")
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate("mazegen {{.Version}}\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file (optional unless given explicitly)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newJSONCmd(),
		a.newTextCmd(),
		a.newCheckCmd(),
		a.newInitCmd(),
	)
	return root
}

// newLogger builds a console logger on w. Timestamps are omitted so output
// is stable across runs.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
