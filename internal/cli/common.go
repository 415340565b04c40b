package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/ksyq12/nginxtools/internal/config"
	"github.com/ksyq12/nginxtools/internal/logger"
	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/ksyq12/nginxtools/internal/store"
	"github.com/ksyq12/nginxtools/internal/validator"
)

// errValidationFailed is returned after a failed nginx -t has been printed.
var errValidationFailed = stderrors.New("nginx config test failed")

// loadConfig loads the config file and applies the global flags on top.
// Without --root the configured root is checked and, if it has no
// sites-available directory, the well-known locations are tried.
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, err
	}

	if rootDir != "" {
		cfg.Root = rootDir
	} else {
		cfg.Root = deps.PlatformDetector.DetectRoot(cfg.Root)
	}
	if nginxBinary != "" {
		cfg.Nginx = nginxBinary
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Using nginx root %s, binary %s", cfg.Root, cfg.Nginx)
	return cfg, nil
}

// loadConfigAndStore loads config and opens the store under its root
func loadConfigAndStore() (*config.Config, store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, deps.StoreFactory.Create(cfg.Root), nil
}

func newChecker(cfg *config.Config) validator.Checker {
	return deps.ValidatorFactory.Create(cfg.Nginx, cfg.ValidateTimeout)
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success    bool                   `json:"success"`
	Name       string                 `json:"name"`
	Action     string                 `json:"action,omitempty"`
	Enabled    bool                   `json:"enabled"`
	RolledBack bool                   `json:"rolled_back,omitempty"`
	Validation *site.ValidationResult `json:"validation,omitempty"`
}

// newSuccessResult creates a success result
func newSuccessResult(name, action string, enabled bool) CommandResult {
	return CommandResult{
		Success: true,
		Name:    name,
		Action:  action,
		Enabled: enabled,
	}
}

// testConfig runs nginx -t after a change and reports the outcome.
// A failed test prints the diagnostics, calls rollback when it is set and
// returns errValidationFailed. When nginx could not be run at all the
// change is kept and the error returned.
func testConfig(ctx context.Context, cfg *config.Config, result CommandResult, rollback func() error, successMsg string, args ...interface{}) error {
	logger.Debug("Running %s -t", cfg.Nginx)
	res, err := newChecker(cfg).Check(commandContext(ctx))
	if err != nil {
		return fmt.Errorf("%s %s done, but the config test did not run: %w", result.Action, result.Name, err)
	}
	result.Validation = &res

	logger.DebugFields("nginx -t finished", map[string]interface{}{
		"binary":    cfg.Nginx,
		"exit_code": res.ExitCode,
		"success":   res.Success,
	})
	if res.Success {
		return outputResult(result, successMsg, args...)
	}

	if rollback != nil {
		if rbErr := rollback(); rbErr != nil {
			logger.LogError(rbErr, fmt.Sprintf("Rollback of %s %s failed", result.Action, result.Name))
		} else {
			result.RolledBack = true
			result.Enabled = false
		}
	}

	result.Success = false
	if jsonOutput {
		if err := output.JSON(result); err != nil {
			return err
		}
		return errValidationFailed
	}
	output.ValidationFailed(res.Output)
	if result.RolledBack {
		output.Warn("Rolled back %s of %s", result.Action, result.Name)
	}
	return errValidationFailed
}

// commandContext returns ctx, or a background context for commands run
// outside Execute.
func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}
