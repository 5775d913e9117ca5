package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/stgdeploy/internal/cli"
	"github.com/trebuchet-org/stgdeploy/internal/cli/render"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		}
		os.Exit(1)
	}
}
