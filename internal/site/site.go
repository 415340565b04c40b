// Package site holds the value types shared by the store, the validator and
// the CLI: a validated site Name, the Entry reported by listings and the
// Result of an nginx configuration test.
package site

import (
	"strings"
	"unicode"

	"github.com/ksyq12/nginxtools/internal/errors"
)

// MaxNameLen leaves room under NAME_MAX (255) for the temporary
// ".<name><random>" file written beside a configuration while it is
// created atomically.
const MaxNameLen = 255 - len(".") - 20

// Name is a site name that is safe to use as a single path segment under
// sites-available and sites-enabled. The zero value is not valid; obtain
// one from ParseName.
type Name struct {
	s string
}

// ParseName validates raw and returns it as a Name. It rejects anything
// that could address a file outside the configured roots.
func ParseName(raw string) (Name, error) {
	switch {
	case raw == "":
		return Name{}, errors.InvalidName(raw, "name cannot be empty")
	case raw == "." || raw == "..":
		return Name{}, errors.InvalidName(raw, "name cannot be a directory reference")
	case strings.ContainsAny(raw, `/\`):
		return Name{}, errors.InvalidName(raw, "name cannot contain a path separator")
	case strings.HasPrefix(raw, "."):
		return Name{}, errors.InvalidName(raw, "name cannot start with a dot")
	case strings.HasPrefix(raw, "-"):
		return Name{}, errors.InvalidName(raw, "name cannot start with a hyphen")
	case len(raw) > MaxNameLen:
		return Name{}, errors.InvalidName(raw, "name is too long")
	}
	for _, r := range raw {
		if r == 0 || unicode.IsSpace(r) || unicode.IsControl(r) {
			return Name{}, errors.InvalidName(raw, "name cannot contain spaces or control characters")
		}
	}
	return Name{s: raw}, nil
}

// MustParseName is like ParseName but panics on error. For tests and
// constants only.
func MustParseName(raw string) Name {
	n, err := ParseName(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name as given.
func (n Name) String() string {
	return n.s
}

// IsZero reports whether n was not produced by ParseName.
func (n Name) IsZero() bool {
	return n.s == ""
}

// Entry is one configuration in sites-available and whether it is linked
// from sites-enabled.
type Entry struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Enabled   bool   `json:"enabled"`
}

// ValidationResult is the outcome of one nginx -t run. Output is the
// combined stdout and stderr in arrival order.
type ValidationResult struct {
	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
}
