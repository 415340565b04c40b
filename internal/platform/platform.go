// Package platform checks the host before nginxtools touches nginx's
// configuration, and locates the nginx configuration root.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ksyq12/nginxtools/internal/errors"
)

// Fixed diagnostics for the startup check.
const (
	MsgUnsupportedOS = "This tool only works on Linux systems."
	MsgNotRoot       = "Please run as root."
)

// Host describes the running process as far as the startup check cares.
type Host struct {
	OS   string
	EUID int
}

// Current returns the host this process runs on.
func Current() Host {
	return Host{OS: runtime.GOOS, EUID: os.Geteuid()}
}

// Check fails with a PRECONDITION error unless h is Linux and the process
// runs as root.
func (h Host) Check() error {
	if h.OS != "linux" {
		return errors.Wrap(errors.ErrCodePrecondition, MsgUnsupportedOS, nil)
	}
	if h.EUID != 0 {
		return errors.Wrap(errors.ErrCodePrecondition, MsgNotRoot, nil)
	}
	return nil
}

// CheckHost runs Check on the current host.
func CheckHost() error {
	return Current().Check()
}

// CandidateRoots lists nginx configuration roots in the order they are
// tried: Debian/Ubuntu packages, then source builds.
var CandidateRoots = []string{
	"/etc/nginx",
	"/usr/local/nginx/conf",
	"/usr/local/etc/nginx",
}

// DetectRoot returns the first of candidates that has a sites-available
// directory.
func DetectRoot(candidates []string) (string, error) {
	for _, root := range candidates {
		if isDir(filepath.Join(root, "sites-available")) {
			return root, nil
		}
	}
	return "", fmt.Errorf("no nginx root with sites-available found (checked %v)", candidates)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
