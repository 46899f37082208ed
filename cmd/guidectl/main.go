// Package main is the entry point for the guidectl CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/liveguide/cmd/guidectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
