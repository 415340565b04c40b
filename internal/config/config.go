package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/ksyq12/nginxtools/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Root            string        `yaml:"root"`
	Nginx           string        `yaml:"nginx"`
	ValidateTimeout time.Duration `yaml:"validate_timeout"`
	SSLCert         string        `yaml:"ssl_cert,omitempty"`
	SSLKey          string        `yaml:"ssl_key,omitempty"`
	LogDir          string        `yaml:"log_dir,omitempty"`
	Rollback        bool          `yaml:"rollback"`
}

// configDir is the default config directory
const configDir = ".config/nginxtools"
const configFile = "config.yaml"

// Environment variables that override the file.
const (
	EnvRoot  = "NGINXTOOLS_ROOT"
	EnvNginx = "NGINXTOOLS_NGINX"
)

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Root:            "/etc/nginx",
		Nginx:           "nginx",
		ValidateTimeout: 30 * time.Second,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from the default path
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to locate config", err)
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields the defaults.
// Environment overrides are applied last.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		// defaults
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read config", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, "failed to parse "+path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvNginx); v != "" {
		c.Nginx = v
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.Wrap(errors.ErrCodeConfig, "root cannot be empty", nil)
	}
	if !filepath.IsAbs(c.Root) {
		return errors.Wrap(errors.ErrCodeConfig, "root must be an absolute path: "+c.Root, nil)
	}
	if c.Nginx == "" {
		return errors.Wrap(errors.ErrCodeConfig, "nginx cannot be empty", nil)
	}
	if c.ValidateTimeout < 0 {
		return errors.Wrap(errors.ErrCodeConfig, "validate_timeout cannot be negative", nil)
	}
	return nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
