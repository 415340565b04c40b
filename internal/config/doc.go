// Package config holds the nginxtools settings stored in YAML.
//
// The file lives at ~/.config/nginxtools/config.yaml unless --config names
// another path. A missing file is not an error; the defaults target a
// Debian-style nginx under /etc/nginx.
//
// Example config.yaml:
//
//	root: /etc/nginx
//	nginx: /usr/sbin/nginx
//	validate_timeout: 30s
//	ssl_cert: /etc/letsencrypt/live/example.com/fullchain.pem
//	ssl_key: /etc/letsencrypt/live/example.com/privkey.pem
//	log_dir: /var/log/nginx
//	rollback: false
//
// NGINXTOOLS_ROOT and NGINXTOOLS_NGINX override root and nginx. Command
// line flags override both.
package config
