package cli

import (
	"time"

	"github.com/ksyq12/nginxtools/internal/config"
	"github.com/ksyq12/nginxtools/internal/executor"
	"github.com/ksyq12/nginxtools/internal/input"
	"github.com/ksyq12/nginxtools/internal/platform"
	"github.com/ksyq12/nginxtools/internal/store"
	"github.com/ksyq12/nginxtools/internal/validator"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	StoreFactory     StoreFactory
	ValidatorFactory ValidatorFactory
	HostChecker      HostChecker
	Executor         executor.CommandExecutor
	StdinReader      input.Reader
}

// ConfigLoader handles configuration loading and saving.
// An empty path means the default location.
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
	Save(cfg *config.Config, path string) error
}

// PlatformDetector locates the nginx configuration root. preferred is
// tried first; if no candidate has a sites-available directory, preferred
// is returned unchanged and the store reports the problem.
type PlatformDetector interface {
	DetectRoot(preferred string) string
}

// StoreFactory opens the configuration store under an nginx root
type StoreFactory interface {
	Create(root string) store.Store
}

// ValidatorFactory creates the configuration checker
type ValidatorFactory interface {
	Create(binary string, timeout time.Duration) validator.Checker
}

// HostChecker performs the startup precondition check
type HostChecker interface {
	Check() error
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:     &realConfigLoader{},
	PlatformDetector: &realPlatformDetector{},
	StoreFactory:     &realStoreFactory{},
	ValidatorFactory: &realValidatorFactory{},
	HostChecker:      &realHostChecker{},
	Executor:         executor.NewSystemExecutor(),
	StdinReader:      input.NewStdinReader(),
}

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func (r *realConfigLoader) Save(cfg *config.Config, path string) error {
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveFile(path)
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) DetectRoot(preferred string) string {
	candidates := append([]string{preferred}, platform.CandidateRoots...)
	root, err := platform.DetectRoot(candidates)
	if err != nil {
		return preferred
	}
	return root
}

type realStoreFactory struct{}

func (r *realStoreFactory) Create(root string) store.Store {
	return store.New(root)
}

type realValidatorFactory struct{}

func (r *realValidatorFactory) Create(binary string, timeout time.Duration) validator.Checker {
	return validator.New(executor.NewSystemExecutor(),
		validator.WithBinary(binary),
		validator.WithTimeout(timeout),
	)
}

type realHostChecker struct{}

func (r *realHostChecker) Check() error {
	return platform.CheckHost()
}
