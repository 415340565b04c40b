package cli

import (
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/spf13/cobra"
)

var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a site",
	Long: `Disable a site by removing its link from sites-enabled, then test the
configuration with nginx -t. The file in sites-available is kept.

Examples:
  nginxtools disable example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runDisable,
}

func init() {
	rootCmd.AddCommand(disableCmd)
}

func runDisable(cmd *cobra.Command, args []string) error {
	name, err := site.ParseName(args[0])
	if err != nil {
		return err
	}

	cfg, st, err := loadConfigAndStore()
	if err != nil {
		return err
	}

	if err := st.Deactivate(name); err != nil {
		return err
	}

	return testConfig(cmd.Context(), cfg, newSuccessResult(name.String(), "disable", false), nil,
		"%s disabled", name)
}
