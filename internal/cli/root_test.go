package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/executor"
	"github.com/ksyq12/nginxtools/internal/platform"
	"github.com/spf13/cobra"
)

func spawnFailure() *executor.MockExecutor {
	return &executor.MockExecutor{
		RunFunc: func(ctx context.Context, name string, args ...string) (executor.Output, error) {
			return executor.Output{}, &executor.StartError{Name: name, Err: exec.ErrNotFound}
		},
	}
}

func TestNeedsHostCheck(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{enableCmd, true},
		{disableCmd, true},
		{createProxyCmd, true},
		{removeCmd, true},
		{listCmd, true},
		{testCmd, true},
		{configCmd, false},
		{configShowCmd, false},
		{configInitCmd, false},
		{&cobra.Command{Use: "help"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			if got := needsHostCheck(tt.cmd); got != tt.want {
				t.Errorf("needsHostCheck(%s) = %v, want %v", tt.cmd.Name(), got, tt.want)
			}
		})
	}
}

func TestPreRun(t *testing.T) {
	hostErr := platform.Host{OS: "darwin"}.Check()
	d := NewMockDeps().WithHostError(hostErr).Build()
	useDeps(t, d)

	err := preRun(listCmd, nil)
	if !errors.Is(err, errors.ErrPrecondition) {
		t.Fatalf("preRun() error = %v, want PRECONDITION", err)
	}
	if err.Error() != platform.MsgUnsupportedOS {
		t.Errorf("message = %q, want %q", err.Error(), platform.MsgUnsupportedOS)
	}

	if err := preRun(configShowCmd, nil); err != nil {
		t.Errorf("config commands skip the host check, got %v", err)
	}
	if calls := d.HostChecker.(*MockHostChecker).Calls; calls != 1 {
		t.Errorf("host checked %d times, want 1", calls)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		json bool
		want string
	}{
		{
			name: "validation failure already printed",
			err:  errValidationFailed,
			want: "",
		},
		{
			name: "site error",
			err:  errors.NotFound("ghost.com"),
			want: "✗ ghost.com: does not exist\n",
		},
		{
			name: "json error",
			err:  fmt.Errorf("enable: %w", errors.AlreadyActive("a.com")),
			json: true,
			want: `"code": "ALREADY_ACTIVE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useDeps(t, NewMockDeps().Build())
			buf := captureOutput(t)
			jsonOutput = tt.json

			reportError(tt.err)

			if tt.want == "" {
				if buf.Len() != 0 {
					t.Errorf("expected no output, got %q", buf.String())
				}
				return
			}
			if tt.json {
				if !strings.Contains(buf.String(), tt.want) {
					t.Errorf("output missing %s:\n%s", tt.want, buf.String())
				}
				return
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReportError_PreconditionOnStderr(t *testing.T) {
	useDeps(t, NewMockDeps().Build())
	stdout := captureOutput(t)
	stderr := captureErrOutput(t)

	reportError(platform.Host{OS: "linux", EUID: 1000}.Check())

	if stdout.Len() != 0 {
		t.Errorf("nothing should reach stdout, got %q", stdout.String())
	}
	if want := "nginxtools: Please run as root.\n"; stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestSetVersion(t *testing.T) {
	old := version
	t.Cleanup(func() { SetVersion(old) })

	SetVersion("1.2.3")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("rootCmd.Version = %q, want 1.2.3", rootCmd.Version)
	}
	if tmpl := rootCmd.VersionTemplate(); !strings.Contains(tmpl, platform.Platform()) {
		t.Errorf("version template %q should name the platform", tmpl)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"enable": false, "disable": false, "createproxy": false, "remove": false,
		"ls": false, "test": false, "show": false, "logs": false, "config": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}

	for alias, target := range map[string]string{"rm": "remove", "list": "ls"} {
		c, _, err := rootCmd.Find([]string{alias})
		if err != nil || c.Name() != target {
			t.Errorf("alias %s resolves to %v (%v), want %s", alias, c, err, target)
		}
	}
}
