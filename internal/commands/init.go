// Package commands implements mazegen CLI commands.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/config"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/scaffold"
)

// InitOpts holds options for the init command.
type InitOpts struct {
	Force     bool
	Templates bool
}

// InitResult holds the result of the init command for output formatting.
type InitResult struct {
	Root         string
	ConfigState  string // "created" or "overwritten"
	StubsCreated []string
	StubsSkipped []string
}

// Init implements the `mazegen init` command.
// Creates mazegen.yaml, example materials and, with opts.Templates, editable
// template copies. Existing stubs are never overwritten.
func Init(fsys fs.FS, root string, opts InitOpts, log *zap.Logger, stdout io.Writer) error {
	configPath := filepath.Join(root, config.DefaultPath)

	_, err := fsys.Stat(configPath)
	configExists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.EReadFailed, "failed to check "+config.DefaultPath, err)
	}

	if configExists && !opts.Force {
		return errors.New(errors.EConfigExists, config.DefaultPath+" already exists; use --force to overwrite")
	}

	configState := "created"
	if configExists {
		configState = "overwritten"
	}

	if err := fs.WriteFileAtomic(fsys, configPath, []byte(scaffold.ConfigTemplate), 0o644); err != nil {
		return errors.Wrap(errors.EWriteFailed, "failed to write "+config.DefaultPath, err)
	}
	log.Debug("wrote config", zap.String("path", configPath), zap.String("state", configState))

	stubs := scaffold.DefaultStubs()
	if opts.Templates {
		stubs = append(stubs, scaffold.TemplateStubs()...)
	}
	stubsResult, err := scaffold.CreateStubs(fsys, root, stubs)
	if err != nil {
		return errors.Wrap(errors.EWriteFailed, "failed to create starter files", err)
	}

	writeInitOutput(stdout, InitResult{
		Root:         root,
		ConfigState:  configState,
		StubsCreated: stubsResult.Created,
		StubsSkipped: stubsResult.Skipped,
	})
	return nil
}

// writeInitOutput writes the stable key: value output for init.
func writeInitOutput(w io.Writer, r InitResult) {
	fmt.Fprintf(w, "root: %s\n", r.Root)
	fmt.Fprintf(w, "config: %s\n", r.ConfigState)
	fmt.Fprintf(w, "files_created: %s\n", listOrNone(r.StubsCreated))
	if len(r.StubsSkipped) > 0 {
		fmt.Fprintf(w, "files_kept: %s\n", strings.Join(r.StubsSkipped, ", "))
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
