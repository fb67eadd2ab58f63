package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp(afero.NewOsFs())
	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if stderrors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Error())
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
