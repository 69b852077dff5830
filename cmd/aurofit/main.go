// ABOUTME: Entry point for aurofit CLI.
// ABOUTME: Invokes the root Cobra command and prints failures in red.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
