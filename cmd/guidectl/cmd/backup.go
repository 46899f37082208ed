package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and restore state backups",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a backup of all projects and template overrides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		payload := store.ExportBackup()
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0600); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Printf("backed up %d projects to %s\n", len(payload.Projects), args[0])
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a backup into the state file",
	Long: `Restore replaces the current projects and template overrides with the
contents of a backup file. The state file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		var payload models.BackupPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("parse backup: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		restored, err := store.RestoreBackup(&payload)
		if err != nil {
			return fmt.Errorf("restore backup: %w", err)
		}
		fmt.Printf("restored %d projects into %s\n", restored, statePath)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
