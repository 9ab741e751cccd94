// Command passentropy estimates password entropy from the command line.
package main

import (
	"os"

	"github.com/fatih/color"
)

var (
	version = "1.0.0"
	appName = "passentropy"

	colorRed    = color.New(color.FgRed, color.Bold)
	colorGreen  = color.New(color.FgGreen, color.Bold)
	colorYellow = color.New(color.FgYellow)
	colorCyan   = color.New(color.FgCyan)
	colorWhite  = color.New(color.FgWhite)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		colorRed.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
