package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/ksyq12/nginxtools/internal/config"
	"github.com/ksyq12/nginxtools/internal/errors"
)

func TestRunConfigShow(t *testing.T) {
	cfg := config.New()
	cfg.LogDir = "/srv/logs"
	cfg.ValidateTimeout = 10 * time.Second
	useDeps(t, NewMockDeps().WithConfig(cfg).Build())
	buf := captureOutput(t)

	if err := runConfigShow(configShowCmd, nil); err != nil {
		t.Fatalf("runConfigShow() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"root: /etc/nginx", "nginx: nginx", "validate_timeout: 10s", "log_dir: /srv/logs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunConfigShow_JSON(t *testing.T) {
	useDeps(t, NewMockDeps().Build())
	buf := captureOutput(t)
	jsonOutput = true
	rootDir = "/opt/nginx"

	if err := runConfigShow(configShowCmd, nil); err != nil {
		t.Fatalf("runConfigShow() error: %v", err)
	}
	for _, want := range []string{`"root": "/opt/nginx"`, `"validate_timeout": "30s"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("JSON missing %s:\n%s", want, buf.String())
		}
	}
}

func TestRunConfigInit(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rootFlag string
		saveErr  error
		wantErr  bool
	}{
		{name: "default path", rootFlag: "/usr/local/nginx/conf"},
		{name: "explicit path", path: "/tmp/nginxtools.yaml"},
		{name: "save fails", saveErr: errors.Wrap(errors.ErrCodeConfig, "failed to write config", nil), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &MockConfigLoader{Cfg: config.New(), SaveErr: tt.saveErr}
			useDeps(t, NewMockDeps().WithConfigLoader(loader).Build())
			buf := captureOutput(t)
			configPath = tt.path
			rootDir = tt.rootFlag

			err := runConfigInit(configInitCmd, nil)

			if tt.wantErr {
				if !errors.Is(err, errors.ErrConfig) {
					t.Fatalf("runConfigInit() error = %v, want CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("runConfigInit() error: %v", err)
			}
			if len(loader.SavePaths) != 1 || loader.SavePaths[0] != tt.path {
				t.Errorf("SavePaths = %v, want [%q]", loader.SavePaths, tt.path)
			}
			if tt.rootFlag != "" && loader.Cfg.Root != tt.rootFlag {
				t.Errorf("saved root = %q, want %q", loader.Cfg.Root, tt.rootFlag)
			}
			if !strings.Contains(buf.String(), "✓ Config written to") {
				t.Errorf("unexpected output %q", buf.String())
			}
		})
	}
}
