package cmd

import (
	"os"

	"github.com/fatih/color"
)

// Style variables for CLI diagnostic output.
var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	successStyle = color.New(color.FgGreen, color.Bold)
	unitStyle    = color.New(color.FgCyan, color.Bold)
	hintStyle    = color.New(color.FgYellow)
)

func printError(err error) {
	errorStyle.Fprintln(os.Stderr, err.Error())
}

func printSuccess(format string, args ...any) {
	successStyle.Printf(format+"\n", args...)
}
