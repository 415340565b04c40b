package cli

import (
	"context"
	"time"

	"github.com/ksyq12/nginxtools/internal/config"
	"github.com/ksyq12/nginxtools/internal/executor"
	"github.com/ksyq12/nginxtools/internal/input"
	"github.com/ksyq12/nginxtools/internal/store"
	"github.com/ksyq12/nginxtools/internal/validator"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	LoadPaths []string
	SavePaths []string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.LoadPaths = append(m.LoadPaths, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	// Hand out a copy so flag overrides never leak between runs.
	cfg := *m.Cfg
	return &cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config, path string) error {
	m.SavePaths = append(m.SavePaths, path)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockPlatformDetector is a test double for PlatformDetector. With Root
// unset the preferred root is kept.
type MockPlatformDetector struct {
	Root  string
	Calls []string
}

func (m *MockPlatformDetector) DetectRoot(preferred string) string {
	m.Calls = append(m.Calls, preferred)
	if m.Root == "" {
		return preferred
	}
	return m.Root
}

// MockStoreFactory is a test double for StoreFactory
type MockStoreFactory struct {
	Store *store.MockStore
	Roots []string
}

func (m *MockStoreFactory) Create(root string) store.Store {
	m.Roots = append(m.Roots, root)
	if m.Store == nil {
		m.Store = store.NewMockStore(root+"/sites-available", root+"/sites-enabled")
	}
	return m.Store
}

// MockValidatorFactory builds real validators on top of a MockExecutor so
// CLI tests exercise the validator's result and error mapping.
type MockValidatorFactory struct {
	Exec     *executor.MockExecutor
	Binaries []string
	Timeouts []time.Duration
}

func (m *MockValidatorFactory) Create(binary string, timeout time.Duration) validator.Checker {
	m.Binaries = append(m.Binaries, binary)
	m.Timeouts = append(m.Timeouts, timeout)
	return validator.New(m.Exec, validator.WithBinary(binary), validator.WithTimeout(timeout))
}

// Checks returns how many times nginx -t was run
func (m *MockValidatorFactory) Checks() int {
	return len(m.Exec.Calls)
}

// MockHostChecker is a test double for HostChecker
type MockHostChecker struct {
	Err   error
	Calls int
}

func (m *MockHostChecker) Check() error {
	m.Calls++
	return m.Err
}

// nginxExec returns an executor whose nginx -t exits with code and prints out.
func nginxExec(code int, out string) *executor.MockExecutor {
	return &executor.MockExecutor{
		RunFunc: func(ctx context.Context, name string, args ...string) (executor.Output, error) {
			return executor.Output{Combined: []byte(out), ExitCode: code}, nil
		},
	}
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults:
// an empty store, a passing configuration test and a root host.
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{Cfg: config.New()},
			PlatformDetector: &MockPlatformDetector{},
			StoreFactory:     &MockStoreFactory{},
			ValidatorFactory: &MockValidatorFactory{Exec: nginxExec(0, "nginx: configuration file /etc/nginx/nginx.conf test is successful\n")},
			HostChecker:      &MockHostChecker{},
			Executor:         &executor.MockExecutor{},
			StdinReader:      input.NewStringReader("y\n"),
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithStore sets the store for the mock
func (b *MockDependenciesBuilder) WithStore(s *store.MockStore) *MockDependenciesBuilder {
	b.deps.StoreFactory = &MockStoreFactory{Store: s}
	return b
}

// WithValidation makes nginx -t exit with code and print out
func (b *MockDependenciesBuilder) WithValidation(code int, out string) *MockDependenciesBuilder {
	b.deps.ValidatorFactory = &MockValidatorFactory{Exec: nginxExec(code, out)}
	return b
}

// WithNginxExecutor sets the executor nginx -t runs on
func (b *MockDependenciesBuilder) WithNginxExecutor(exec *executor.MockExecutor) *MockDependenciesBuilder {
	b.deps.ValidatorFactory = &MockValidatorFactory{Exec: exec}
	return b
}

// WithExecutor sets the executor used for auxiliary commands
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithHostError makes the startup check fail with err
func (b *MockDependenciesBuilder) WithHostError(err error) *MockDependenciesBuilder {
	b.deps.HostChecker = &MockHostChecker{Err: err}
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(inputs ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(inputs...)
	return b
}

// WithDetectedRoot sets the root the platform detector finds
func (b *MockDependenciesBuilder) WithDetectedRoot(root string) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Root: root}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
