package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/template"
	"github.com/spf13/cobra"
)

var (
	logsLines  int
	logsFollow bool
)

var logsCmd = &cobra.Command{
	Use:   "logs <domain>",
	Short: "View the access log of a proxy site",
	Long: `Show the last lines of <log_dir>/<domain>_proxy.log, the access log
written by sites created with createproxy.

Examples:
  nginxtools logs app.example.com
  nginxtools logs app.example.com -n 50
  nginxtools logs app.example.com -f`,
	Args: cobra.ExactArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 20, "Number of lines to show")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")

	rootCmd.AddCommand(logsCmd)
}

type logsResult struct {
	Domain string   `json:"domain"`
	Path   string   `json:"path"`
	Lines  []string `json:"lines"`
}

func runLogs(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if err := template.ValidateDomain(domain); err != nil {
		return err
	}
	if logsLines < 1 {
		return fmt.Errorf("--lines must be at least 1")
	}
	if logsFollow && jsonOutput {
		return fmt.Errorf("--follow cannot be combined with --json")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = template.DefaultLogDir
	}
	logFile := filepath.Join(logDir, domain+"_proxy.log")

	info, err := os.Stat(logFile)
	if err != nil {
		return fmt.Errorf("no log file found for %s: %w", domain, err)
	}
	// Following resumes where tail started so nothing written meanwhile is lost.
	offset := info.Size()

	tailPath, err := deps.Executor.LookPath("tail")
	if err != nil {
		return fmt.Errorf("tail command not found: %w", err)
	}

	ctx := commandContext(cmd.Context())
	out, err := deps.Executor.Run(ctx, tailPath, "-n", strconv.Itoa(logsLines), logFile)
	if err != nil {
		return fmt.Errorf("failed to read logs: %w", err)
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("tail exited with status %d: %s", out.ExitCode, strings.TrimSpace(string(out.Combined)))
	}

	text := strings.TrimRight(string(out.Combined), "\n")

	if jsonOutput {
		lines := []string{}
		if text != "" {
			lines = strings.Split(text, "\n")
		}
		return output.JSON(logsResult{Domain: domain, Path: logFile, Lines: lines})
	}

	output.Info("Showing logs from: %s", logFile)
	if text != "" {
		output.Print("%s", text)
	}

	if logsFollow {
		return followFile(ctx, logFile, offset, output.Writer(), nil)
	}
	return nil
}
