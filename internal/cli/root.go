package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/logger"
	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/platform"
	"github.com/spf13/cobra"
)

var (
	jsonOutput  bool
	verbose     bool
	rootDir     string
	nginxBinary string
	configPath  string
	version     = "dev"
)

// skipHostCheck marks commands that may run without root on any OS.
const skipHostCheck = "skip-host-check"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nginxtools",
	Short: "Manage nginx site configurations",
	Long: `nginxtools manages nginx site configurations in sites-available and
sites-enabled: enable, disable, create reverse proxies, remove and list
sites. Every change is followed by an "nginx -t" configuration test.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}} (" + platform.Platform() + ")\n")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "nginx configuration root (default from config, then auto-detected)")
	rootCmd.PersistentFlags().StringVar(&nginxBinary, "nginx", "", "nginx binary used for the configuration test")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/nginxtools/config.yaml)")
}

func preRun(cmd *cobra.Command, args []string) error {
	logger.Init(verbose)

	if !needsHostCheck(cmd) {
		return nil
	}
	return deps.HostChecker.Check()
}

// needsHostCheck reports whether cmd touches nginx. Help, completion and
// annotated commands run anywhere.
func needsHostCheck(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipHostCheck]; ok {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// reportError prints err once. A failed configuration test has already
// been printed with its diagnostics.
func reportError(err error) {
	if stderrors.Is(err, errValidationFailed) {
		return
	}
	if jsonOutput {
		_ = output.JSON(errorResult{
			Success: false,
			Code:    string(errors.CodeOf(err)),
			Error:   err.Error(),
		})
		return
	}
	// Startup precondition messages go to stderr without decoration.
	if errors.CodeOf(err) == errors.ErrCodePrecondition {
		output.Diagnostic("%v", err)
		return
	}
	output.Error("%v", err)
}

type errorResult struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}
