package cli

import (
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/spf13/cobra"
)

var enableRollback bool

var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a site",
	Long: `Enable a site by linking it from sites-available into sites-enabled,
then test the configuration with nginx -t.

Examples:
  nginxtools enable example.com
  nginxtools enable example.com --rollback`,
	Args: cobra.ExactArgs(1),
	RunE: runEnable,
}

func init() {
	enableCmd.Flags().BoolVar(&enableRollback, "rollback", false, "Disable the site again if the config test fails")

	rootCmd.AddCommand(enableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	name, err := site.ParseName(args[0])
	if err != nil {
		return err
	}

	cfg, st, err := loadConfigAndStore()
	if err != nil {
		return err
	}

	if err := st.Activate(name); err != nil {
		return err
	}

	var rollback func() error
	if rollbackEnabled(cmd, enableRollback, cfg.Rollback) {
		rollback = func() error { return st.Deactivate(name) }
	}

	return testConfig(cmd.Context(), cfg, newSuccessResult(name.String(), "enable", true), rollback,
		"%s enabled", name)
}

// rollbackEnabled prefers an explicit --rollback over the config default
func rollbackEnabled(cmd *cobra.Command, flag, fromConfig bool) bool {
	if cmd.Flags().Changed("rollback") {
		return flag
	}
	return fromConfig
}
