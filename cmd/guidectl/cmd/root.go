// Package cmd contains the CLI commands for guidectl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/liveguide/internal/guide"
	"github.com/good-yellow-bee/liveguide/internal/seed"
	"github.com/good-yellow-bee/liveguide/internal/storage"
)

var (
	// Used for flags
	verbose   bool
	output    string
	statePath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "guidectl",
	Short: "guidectl - LiveGuide maintenance tool",
	Long: `guidectl operates directly on a LiveGuide state file. It covers the
offline tasks the HTTP API is not suited for: exports, backups, share
tokens, and operator credential hashes.

Examples:
  # List projects in a state file
  guidectl --state data/state.json projects

  # Export a project as a static site archive
  guidectl export a1b2c3 guide.zip

  # Produce a share token for a project
  guidectl share encode a1b2c3

  # Generate a bcrypt hash for the server config
  guidectl hash`,
	// Run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json, plain)")
	rootCmd.PersistentFlags().StringVarP(&statePath, "state", "s", "data/state.json", "state file path")
}

// openStore loads the guide state referenced by --state. Commands that
// mutate state rely on the store persisting back to the same file.
func openStore() (*guide.Store, error) {
	store := guide.NewStore(seed.NewLoader(""), storage.NewLocalStore(statePath), nil)
	if err := store.Open(); err != nil {
		return nil, fmt.Errorf("open state %s: %w", statePath, err)
	}
	return store, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// GetOutput returns the output format.
func GetOutput() string {
	return output
}

// PrintError prints an error message and exits if fatal is true.
func PrintError(msg string, fatal bool) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	if fatal {
		os.Exit(1)
	}
}

// PrintVerbose prints a message only if verbose mode is enabled.
func PrintVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}
