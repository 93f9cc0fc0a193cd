package main

import (
	"os"

	"github.com/pterm/pterm"
)

// Exit codes. Declining the confirmation prompt or having nothing left to
// evaluate is a normal exit.
const (
	ExitSuccess = 0
	ExitFailure = 1 // unusable input directory, invalid configuration, I/O failure
)

func main() {
	if err := execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
