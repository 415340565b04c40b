package cli

import (
	"strings"

	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the nginx configuration",
	Long: `Run nginx -t against the current configuration without changing
any site.

Examples:
  nginxtools test
  nginxtools test --nginx /usr/local/sbin/nginx`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

type testResult struct {
	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
	Binary   string `json:"binary"`
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := newChecker(cfg).Check(commandContext(cmd.Context()))
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := output.JSON(testResult{
			Success:  res.Success,
			ExitCode: res.ExitCode,
			Output:   res.Output,
			Binary:   cfg.Nginx,
		}); err != nil {
			return err
		}
		if !res.Success {
			return errValidationFailed
		}
		return nil
	}

	if !res.Success {
		output.ValidationFailed(res.Output)
		return errValidationFailed
	}
	if verbose && res.Output != "" {
		output.Print("%s", strings.TrimRight(res.Output, "\n"))
	}
	output.Success("Nginx config test passed")
	return nil
}
