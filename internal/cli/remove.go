package cli

import (
	"fmt"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/input"
	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/spf13/cobra"
)

var forceRemove bool

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a site",
	Long: `Remove a site: disable it if it is enabled, delete its file from
sites-available, then test the configuration with nginx -t.

Examples:
  nginxtools remove example.com
  nginxtools rm example.com --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name, err := site.ParseName(args[0])
	if err != nil {
		return err
	}

	cfg, st, err := loadConfigAndStore()
	if err != nil {
		return err
	}

	exists, err := st.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound(name.String())
	}

	if !forceRemove {
		if jsonOutput {
			return fmt.Errorf("remove with --json needs --force")
		}
		output.Warn("This will permanently delete sites-available/%s", name)
		output.Print("Are you sure? [y/N]: ")
		if !input.Confirm(deps.StdinReader) {
			output.Info("Cancelled")
			return nil
		}
	}

	if err := st.Remove(name); err != nil {
		return err
	}

	return testConfig(cmd.Context(), cfg, newSuccessResult(name.String(), "remove", false), nil,
		"%s removed", name)
}
