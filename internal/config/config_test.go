package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ksyq12/nginxtools/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()
	if cfg.Root != "/etc/nginx" {
		t.Errorf("expected /etc/nginx, got %s", cfg.Root)
	}
	if cfg.Nginx != "nginx" {
		t.Errorf("expected nginx, got %s", cfg.Nginx)
	}
	if cfg.ValidateTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.ValidateTimeout)
	}
	if cfg.Rollback {
		t.Error("rollback should be off by default")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvNginx, "")

	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if cfg.Root != "/etc/nginx" {
			t.Errorf("expected default root, got %s", cfg.Root)
		}
	})

	t.Run("values from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `root: /srv/nginx
nginx: /usr/local/sbin/nginx
validate_timeout: 5s
ssl_cert: /etc/ssl/a.pem
ssl_key: /etc/ssl/a.key
log_dir: /srv/logs
rollback: true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if cfg.Root != "/srv/nginx" || cfg.Nginx != "/usr/local/sbin/nginx" {
			t.Errorf("unexpected paths: %+v", cfg)
		}
		if cfg.ValidateTimeout != 5*time.Second {
			t.Errorf("expected 5s, got %s", cfg.ValidateTimeout)
		}
		if cfg.SSLCert != "/etc/ssl/a.pem" || cfg.SSLKey != "/etc/ssl/a.key" || cfg.LogDir != "/srv/logs" {
			t.Errorf("unexpected template paths: %+v", cfg)
		}
		if !cfg.Rollback {
			t.Error("expected rollback true")
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("rollback: true\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Root != "/etc/nginx" || cfg.ValidateTimeout != 30*time.Second {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("root: [unterminated\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFile(path)
		if !errors.Is(err, errors.ErrConfig) {
			t.Errorf("expected ErrConfig, got %v", err)
		}
	})

	t.Run("relative root rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("root: etc/nginx\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFile(path)
		if !errors.Is(err, errors.ErrConfig) {
			t.Errorf("expected ErrConfig, got %v", err)
		}
	})
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRoot, "/opt/nginx")
	t.Setenv(EnvNginx, "/opt/nginx/sbin/nginx")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("root: /srv/nginx\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "/opt/nginx" {
		t.Errorf("env should override file, got %s", cfg.Root)
	}
	if cfg.Nginx != "/opt/nginx/sbin/nginx" {
		t.Errorf("env should override nginx, got %s", cfg.Nginx)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvNginx, "")

	cfg := New()
	cfg.Root = "/srv/nginx"
	cfg.ValidateTimeout = time.Minute
	cfg.SSLCert = "/etc/ssl/x.pem"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(tempDir, ".config", "nginxtools", "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Root != "/srv/nginx" || loaded.ValidateTimeout != time.Minute || loaded.SSLCert != "/etc/ssl/x.pem" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/admin")

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/home/admin/.config/nginxtools/config.yaml" {
		t.Errorf("unexpected path %s", path)
	}
}
