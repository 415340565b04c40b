package cli

import (
	"strings"

	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the nginxtools config file",
	Annotations: map[string]string{
		skipHostCheck: "",
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, environment and flags
have been applied.

Examples:
  nginxtools config show
  nginxtools config show --root /usr/local/nginx/conf --json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Write the effective configuration to the config file so later runs
use it without flags.

Examples:
  nginxtools config init --root /usr/local/nginx/conf --nginx /usr/local/nginx/sbin/nginx`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"root":             cfg.Root,
			"nginx":            cfg.Nginx,
			"validate_timeout": cfg.ValidateTimeout.String(),
			"ssl_cert":         cfg.SSLCert,
			"ssl_key":          cfg.SSLKey,
			"log_dir":          cfg.LogDir,
			"rollback":         cfg.Rollback,
		})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	output.Print("%s", strings.TrimRight(string(data), "\n"))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := deps.ConfigLoader.Save(cfg, configPath); err != nil {
		return err
	}

	target := configPath
	if target == "" {
		target = "~/.config/nginxtools/config.yaml"
	}
	return outputResult(map[string]interface{}{
		"success": true,
		"path":    target,
	}, "Config written to %s", target)
}
