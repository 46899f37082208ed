package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/liveguide/internal/export"
)

var exportFlat bool

var exportCmd = &cobra.Command{
	Use:   "export <project-id> <destination>",
	Short: "Export a project as a static guide site",
	Long: `Export writes the assembled guide site for a project. By default the
destination is a ZIP archive; with --flat the files are written into a
directory instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, dest := args[0], args[1]

		store, err := openStore()
		if err != nil {
			return err
		}
		p, err := store.GetProject(projectID)
		if err != nil {
			return fmt.Errorf("project %s: %w", projectID, err)
		}

		if exportFlat {
			files := export.Files(p)
			for name, data := range files {
				path := filepath.Join(dest, filepath.FromSlash(name))
				if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					return err
				}
				PrintVerbose("wrote %s (%d bytes)", path, len(data))
			}
			fmt.Printf("exported %d files to %s\n", len(files), dest)
			return nil
		}

		f, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer f.Close()

		files := export.Archive(p)
		if err := export.WriteZip(f, files); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		fmt.Printf("exported %d files to %s\n", len(files), dest)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportFlat, "flat", false, "write files into a directory instead of a ZIP archive")
	rootCmd.AddCommand(exportCmd)
}
