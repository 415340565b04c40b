package cli

import (
	"path/filepath"
	"strings"

	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a site's configuration",
	Long: `Print a site's file from sites-available and whether it is enabled.

Examples:
  nginxtools show example.com
  nginxtools show example.com --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the site information for output
type showDetail struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
	Content string `json:"content"`
}

func runShow(cmd *cobra.Command, args []string) error {
	name, err := site.ParseName(args[0])
	if err != nil {
		return err
	}

	_, st, err := loadConfigAndStore()
	if err != nil {
		return err
	}

	content, err := st.Read(name)
	if err != nil {
		return err
	}

	enabled, err := st.IsActive(name)
	if err != nil {
		output.Warn("Could not determine enabled status: %v", err)
	}

	detail := showDetail{
		Name:    name.String(),
		Path:    filepath.Join(st.Paths().Available, name.String()),
		Enabled: enabled,
		Content: content,
	}

	if jsonOutput {
		return output.JSON(detail)
	}

	output.Site(detail.Name, detail.Enabled)
	output.Print("# %s", detail.Path)
	output.Print("%s", strings.TrimRight(detail.Content, "\n"))
	return nil
}
