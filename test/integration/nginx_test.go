//go:build integration

package integration

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/site"
	"github.com/ksyq12/nginxtools/internal/store"
	"github.com/ksyq12/nginxtools/internal/template"
	"github.com/ksyq12/nginxtools/internal/validator"
)

// testEnv is a self-contained nginx prefix: its own nginx.conf including
// sites-enabled, a log directory and a self-signed certificate.
type testEnv struct {
	root    string
	logDir  string
	cert    string
	key     string
	wrapper string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	base := t.TempDir()

	env := &testEnv{
		root:    base,
		logDir:  filepath.Join(base, "logs"),
		cert:    filepath.Join(base, "cert.pem"),
		key:     filepath.Join(base, "key.pem"),
		wrapper: filepath.Join(base, "nginx-test"),
	}

	for _, dir := range []string{store.AvailableDir, store.EnabledDir, "logs"} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	conf := fmt.Sprintf(`pid %[1]s/nginx.pid;
error_log %[1]s/logs/error.log;
events {}
http {
    include %[1]s/sites-enabled/*;
}
`, base)
	writeFile(t, filepath.Join(base, "nginx.conf"), conf, 0644)

	// The validator runs "<binary> -t"; point nginx at the prefix.
	nginxPath, err := exec.LookPath("nginx")
	if err != nil {
		t.Skip("nginx is not available")
	}
	script := fmt.Sprintf("#!/bin/sh\nexec %s -p %s/ -c %s/nginx.conf -e %s/logs/error.log \"$@\"\n",
		nginxPath, base, base, base)
	writeFile(t, env.wrapper, script, 0755)

	writeSelfSigned(t, env.cert, env.key)
	return env
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func writeSelfSigned(t *testing.T, certPath, keyPath string) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "app.test"},
		DNSNames:     []string{"app.test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("Failed to create certificate: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		t.Fatalf("Failed to marshal key: %v", err)
	}

	writeFile(t, certPath, string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})), 0644)
	writeFile(t, keyPath, string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})), 0600)
}

func TestProxyLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	st := store.New(env.root)
	v := validator.New(nil, validator.WithBinary(env.wrapper), validator.WithTimeout(30*time.Second))
	ctx := context.Background()
	name := site.MustParseName("app.test")

	t.Run("empty configuration passes", func(t *testing.T) {
		res, err := v.Check(ctx)
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}
		if !res.Success {
			t.Fatalf("expected success, got exit %d:\n%s", res.ExitCode, res.Output)
		}
		if !strings.Contains(res.Output, "syntax is ok") {
			t.Errorf("expected nginx diagnostics in output, got:\n%s", res.Output)
		}
	})

	t.Run("create and activate proxy", func(t *testing.T) {
		content, err := template.RenderProxyWithOptions("app.test", 3000, template.ProxyOptions{
			SSLCert: env.cert,
			SSLKey:  env.key,
			LogDir:  env.logDir,
		})
		if err != nil {
			t.Fatalf("RenderProxyWithOptions() error: %v", err)
		}
		if err := st.Create(name, content); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if err := st.Activate(name); err != nil {
			t.Fatalf("Activate() error: %v", err)
		}

		res, err := v.Check(ctx)
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}
		if !res.Success {
			t.Fatalf("generated proxy failed nginx -t (exit %d):\n%s", res.ExitCode, res.Output)
		}
	})

	t.Run("list shows enabled proxy", func(t *testing.T) {
		entries, err := st.List()
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(entries) != 1 || entries[0].Name != "app.test" || !entries[0].Enabled {
			t.Errorf("List() = %+v, want one enabled app.test", entries)
		}
	})

	t.Run("broken site fails the test", func(t *testing.T) {
		broken := site.MustParseName("broken.test")
		if err := st.Create(broken, "server { listen 80;\n"); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if err := st.Activate(broken); err != nil {
			t.Fatalf("Activate() error: %v", err)
		}

		res, err := v.Check(ctx)
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}
		if res.Success || res.ExitCode == 0 {
			t.Fatalf("expected failure, got exit %d", res.ExitCode)
		}
		if !strings.Contains(res.Output, "broken.test") {
			t.Errorf("diagnostics should name the broken file, got:\n%s", res.Output)
		}

		if err := st.Remove(broken); err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		res, err = v.Check(ctx)
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}
		if !res.Success {
			t.Errorf("expected success after removal, got:\n%s", res.Output)
		}
	})

	t.Run("disable and remove", func(t *testing.T) {
		if err := st.Deactivate(name); err != nil {
			t.Fatalf("Deactivate() error: %v", err)
		}
		if err := st.Deactivate(name); !errors.Is(err, errors.ErrNotActive) {
			t.Errorf("second Deactivate() = %v, want NotActive", err)
		}
		if err := st.Remove(name); err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		if ok, _ := st.Exists(name); ok {
			t.Error("site should be gone after Remove")
		}
	})
}

func TestMissingBinary(t *testing.T) {
	v := validator.New(nil, validator.WithBinary(filepath.Join(t.TempDir(), "no-such-nginx")))

	_, err := v.Check(context.Background())
	if !errors.Is(err, errors.ErrSpawn) {
		t.Errorf("Check() error = %v, want SPAWN", err)
	}
}
