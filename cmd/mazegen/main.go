// Command mazegen generates PCIbex Maze experiment scripts from stimulus files.
package main

import (
	"os"

	"github.com/NielsdaWheelz/mazegen/internal/cli"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
)

func main() {
	err := cli.Run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
