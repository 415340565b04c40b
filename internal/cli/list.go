package cli

import (
	"path/filepath"
	"sort"

	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/spf13/cobra"
)

var listLong bool

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List sites",
	Long: `List every site in sites-available and whether it is enabled.

Examples:
  nginxtools ls
  nginxtools ls --long
  nginxtools ls --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show a table with file locations")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, st, err := loadConfigAndStore()
	if err != nil {
		return err
	}

	entries, err := st.List()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	if jsonOutput {
		if entries == nil {
			entries = []site.Entry{}
		}
		return output.JSON(entries)
	}

	if len(entries) == 0 {
		output.Info("No sites in %s", st.Paths().Available)
		return nil
	}

	if listLong {
		paths := st.Paths()
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			status := "disabled"
			link := "-"
			if e.Enabled {
				status = "enabled"
				link = filepath.Join(paths.Enabled, e.Name)
			}
			rows = append(rows, []string{e.Name, status, filepath.Join(paths.Available, e.Name), link})
		}
		output.Table([]string{"NAME", "STATUS", "FILE", "LINK"}, rows)
		return nil
	}

	for _, e := range entries {
		output.Site(e.Name, e.Enabled)
	}
	return nil
}
