package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/ksyq12/nginxtools/internal/output"
	"github.com/ksyq12/nginxtools/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	color.NoColor = true
}

// useDeps installs d for the duration of the test and resets the global
// flags, which cobra would otherwise carry over from earlier tests.
func useDeps(t *testing.T, d *Dependencies) {
	t.Helper()
	old := deps
	deps = d
	resetFlags()
	t.Cleanup(func() {
		deps = old
		resetFlags()
	})
}

func resetFlags() {
	jsonOutput = false
	verbose = false
	rootDir = ""
	nginxBinary = ""
	configPath = ""
	enableRollback = false
	createRollback = false
	forceRemove = false
	listLong = false
	logsLines = 20
	logsFollow = false
	for _, c := range []*cobra.Command{enableCmd, createProxyCmd} {
		if f := c.Flags().Lookup("rollback"); f != nil {
			f.Changed = false
		}
	}
}

// captureOutput redirects user output into a buffer until the test ends.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	output.SetOutput(&buf)
	t.Cleanup(func() { output.SetOutput(nil) })
	return &buf
}

// captureErrOutput redirects diagnostics into a buffer until the test ends.
func captureErrOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	output.SetErrOutput(&buf)
	t.Cleanup(func() { output.SetErrOutput(nil) })
	return &buf
}

// setRollbackFlag simulates --rollback=<v> on cmd.
func setRollbackFlag(t *testing.T, cmd *cobra.Command, v string) {
	t.Helper()
	if err := cmd.Flags().Set("rollback", v); err != nil {
		t.Fatalf("set --rollback: %v", err)
	}
}

func mockStore() *store.MockStore {
	return store.NewMockStore("/etc/nginx/sites-available", "/etc/nginx/sites-enabled")
}

func validatorFactory(d *Dependencies) *MockValidatorFactory {
	return d.ValidatorFactory.(*MockValidatorFactory)
}
