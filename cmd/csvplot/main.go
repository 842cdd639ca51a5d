// csvplot - interactive CSV column plotting
//
// csvplot lists the CSV files in the working directory, loads one, and
// draws its columns as histograms, line, bar or box plots, or one column
// against another with an optional best-fit line. Charts open in a window
// or are saved as pdf, png, svg or jpg.
package main

import (
	"os"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		csverrors.Display(err)
		os.Exit(1)
	}
}
