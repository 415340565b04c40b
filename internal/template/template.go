package template

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"text/template"

	"github.com/ksyq12/nginxtools/internal/errors"
)

// Defaults used when ProxyOptions leaves a field empty. The certificate
// pair is Debian's ssl-cert snakeoil pair, so a fresh proxy passes nginx -t
// before a real certificate is installed.
const (
	DefaultSSLCert = "/etc/ssl/certs/ssl-cert-snakeoil.pem"
	DefaultSSLKey  = "/etc/ssl/private/ssl-cert-snakeoil.key"
	DefaultLogDir  = "/var/log/nginx"
)

// domainPattern accepts host names and leading-wildcard host names. It
// keeps nginx syntax characters (; { } $ quotes) out of generated files.
var domainPattern = regexp.MustCompile(`^(\*\.)?[A-Za-z0-9_]([A-Za-z0-9_-]*[A-Za-z0-9_])?(\.[A-Za-z0-9_]([A-Za-z0-9_-]*[A-Za-z0-9_])?)*$`)

// ProxyOptions overrides host-specific paths in the proxy template.
type ProxyOptions struct {
	SSLCert string
	SSLKey  string
	LogDir  string
}

// ProxyData contains data for rendering the proxy template
type ProxyData struct {
	Domain  string
	Port    int
	SSLCert string
	SSLKey  string
	LogDir  string
}

var proxyTmpl = template.Must(template.New(path.Base(proxyTemplate)).ParseFS(nginxTemplates, proxyTemplate))

// RenderProxy renders an HTTPS reverse proxy for domain forwarding to
// http://127.0.0.1:port, plus a port 80 block redirecting to HTTPS. The
// output depends only on the arguments.
func RenderProxy(domain string, port int) (string, error) {
	return RenderProxyWithOptions(domain, port, ProxyOptions{})
}

// RenderProxyWithOptions is RenderProxy with certificate and log paths
// taken from opts where set.
func RenderProxyWithOptions(domain string, port int, opts ProxyOptions) (string, error) {
	if err := ValidateDomain(domain); err != nil {
		return "", err
	}
	if err := ValidatePort(port); err != nil {
		return "", err
	}

	data := ProxyData{
		Domain:  domain,
		Port:    port,
		SSLCert: orDefault(opts.SSLCert, DefaultSSLCert),
		SSLKey:  orDefault(opts.SSLKey, DefaultSSLKey),
		LogDir:  orDefault(opts.LogDir, DefaultLogDir),
	}

	var buf bytes.Buffer
	if err := proxyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// ValidatePort checks that port is a usable TCP port.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.InvalidPort(port)
	}
	return nil
}

// ValidateDomain checks that domain can be used as a server_name.
func ValidateDomain(domain string) error {
	if domain == "" {
		return errors.InvalidName(domain, "domain cannot be empty")
	}
	if len(domain) > 253 || !domainPattern.MatchString(domain) {
		return errors.InvalidName(domain, "not a valid domain name")
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
