package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects and templates in a state file",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		all := append(store.ListTemplates(), store.ListProjects()...)

		if GetOutput() == "json" {
			data, err := json.MarshalIndent(all, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tNAME\tCOMPONENTS")
		for _, p := range all {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Kind, p.Name, len(p.Components))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
