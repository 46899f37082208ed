package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/liveguide/internal/share"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode and decode share tokens",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode <project-id>",
	Short: "Produce a share token for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		p, err := store.GetProject(args[0])
		if err != nil {
			return fmt.Errorf("project %s: %w", args[0], err)
		}

		token, err := share.Encode(share.Input{
			Components:   p.Components,
			CommonFiles:  p.CommonFiles,
			CommonAssets: p.CommonAssets,
			ProjectName:  p.Name,
		})
		if err != nil {
			return fmt.Errorf("encode share token: %w", err)
		}
		PrintVerbose("token length %d of budget %d", len(token), share.Budget)
		fmt.Println(token)
		return nil
	},
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a share token and print its payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := share.Decode(args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)
	rootCmd.AddCommand(shareCmd)
}
