// Package template renders nginx configuration files from embedded Go
// templates.
//
// The only template is nginx/proxy.tmpl, a reverse proxy that terminates
// HTTPS on port 443 and forwards to a local port:
//
//	content, err := template.RenderProxy("example.com", 3000)
//	if err != nil {
//	    return err
//	}
//
// The generated file contains two server blocks. The first listens on 443
// with ssl, sets server_name, the certificate pair and a per-domain access
// log (<log dir>/<domain>_proxy.log), and proxies / to
// http://127.0.0.1:<port> with the Host, X-Real-IP, X-Forwarded-For and
// X-Forwarded-Proto headers plus the WebSocket Upgrade and Connection
// headers. The second listens on 80, redirects requests for the domain to
// HTTPS with a 301 and answers 404 for any other host.
//
// # Template Data
//
// Templates receive ProxyData:
//   - Domain: server_name, also used in the log file name
//   - Port: target port on 127.0.0.1
//   - SSLCert, SSLKey: certificate pair paths
//   - LogDir: access log directory
//
// Rendering is deterministic. Ports outside 1-65535 fail with INVALID_PORT,
// domains that are not host names fail with INVALID_NAME.
package template
