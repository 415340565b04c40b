package cli

import (
	"fmt"
	"strconv"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/logger"
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/ksyq12/nginxtools/internal/template"
	"github.com/spf13/cobra"
)

var createRollback bool

var createProxyCmd = &cobra.Command{
	Use:   "createproxy <domain> <port>",
	Short: "Create and enable a reverse proxy site",
	Long: `Create sites-available/<domain> with an HTTPS reverse proxy to
http://127.0.0.1:<port> and an HTTP to HTTPS redirect, enable it, then test
the configuration with nginx -t.

Certificate paths and the log directory come from the config file
(ssl_cert, ssl_key, log_dir).

Examples:
  nginxtools createproxy app.example.com 3000
  nginxtools createproxy app.example.com 3000 --rollback`,
	Args: cobra.ExactArgs(2),
	RunE: runCreateProxy,
}

func init() {
	createProxyCmd.Flags().BoolVar(&createRollback, "rollback", false, "Remove the site again if the config test fails")

	rootCmd.AddCommand(createProxyCmd)
}

func runCreateProxy(cmd *cobra.Command, args []string) error {
	domain := args[0]

	name, err := site.ParseName(domain)
	if err != nil {
		return err
	}
	port, err := parsePort(args[1])
	if err != nil {
		return err
	}

	cfg, st, err := loadConfigAndStore()
	if err != nil {
		return err
	}

	content, err := template.RenderProxyWithOptions(domain, port, template.ProxyOptions{
		SSLCert: cfg.SSLCert,
		SSLKey:  cfg.SSLKey,
		LogDir:  cfg.LogDir,
	})
	if err != nil {
		return err
	}

	if err := st.Create(name, content); err != nil {
		return err
	}
	logger.Debug("Wrote %s", name)

	if err := st.Activate(name); err != nil {
		return fmt.Errorf("created %s but could not enable it: %w", name, err)
	}

	var rollback func() error
	if rollbackEnabled(cmd, createRollback, cfg.Rollback) {
		rollback = func() error { return st.Remove(name) }
	}

	return testConfig(cmd.Context(), cfg, newSuccessResult(name.String(), "createproxy", true), rollback,
		"Proxy %s -> http://127.0.0.1:%d created and enabled", name, port)
}

// parsePort parses a decimal TCP port in 1-65535
func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPort, fmt.Sprintf("invalid port %q", raw), err)
	}
	if err := template.ValidatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}
