package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/good-yellow-bee/liveguide/internal/api/auth"
)

var hashCost int

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Generate a bcrypt password hash for the server config",
	Long: `Hash prompts for a password twice and prints a bcrypt hash suitable
for the auth.password_hash field in the server configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "Password: ")
		first, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		fmt.Fprint(os.Stderr, "Confirm:  ")
		second, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if string(first) != string(second) {
			return fmt.Errorf("passwords do not match")
		}
		if err := auth.ValidatePassword(string(first)); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword(first, hashCost)
		if err != nil {
			return fmt.Errorf("generate hash: %w", err)
		}
		fmt.Println(string(hash))
		return nil
	},
}

func init() {
	hashCmd.Flags().IntVar(&hashCost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	rootCmd.AddCommand(hashCmd)
}
