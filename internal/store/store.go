package store

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/site"
)

// Default directory names under the nginx root.
const (
	AvailableDir = "sites-available"
	EnabledDir   = "sites-enabled"
)

// DefaultRoot is the nginx configuration root on Debian-style hosts.
const DefaultRoot = "/etc/nginx"

// Store is the single source of truth for which site configurations exist
// and which are active.
type Store interface {
	// List returns every configuration in sites-available with its state
	List() ([]site.Entry, error)

	// Exists reports whether name is present in sites-available
	Exists(name site.Name) (bool, error)

	// IsActive reports whether name has a link in sites-enabled
	IsActive(name site.Name) (bool, error)

	// Activate links name from sites-enabled
	Activate(name site.Name) error

	// Deactivate removes the sites-enabled link for name
	Deactivate(name site.Name) error

	// Remove deactivates name if needed and deletes it from sites-available
	Remove(name site.Name) error

	// Create writes a new configuration without activating it
	Create(name site.Name, content string) error

	// Read returns the content of a configuration
	Read(name site.Name) (string, error)

	// Paths returns the two roots
	Paths() Paths
}

// Paths contains the two configuration roots.
type Paths struct {
	Available string // all known configurations
	Enabled   string // links to the active ones
}

// DirStore implements Store on the sites-available/sites-enabled layout.
// It holds no cache; every call reads the filesystem.
type DirStore struct {
	paths Paths
}

// New creates a store rooted at root, using root/sites-available and
// root/sites-enabled. The directories must already exist.
func New(root string) *DirStore {
	return NewWithPaths(filepath.Join(root, AvailableDir), filepath.Join(root, EnabledDir))
}

// NewWithPaths creates a store with explicit roots.
func NewWithPaths(available, enabled string) *DirStore {
	return &DirStore{
		paths: Paths{
			Available: absPath(available),
			Enabled:   absPath(enabled),
		},
	}
}

// absPath makes link targets independent of the working directory.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Paths returns the config paths
func (s *DirStore) Paths() Paths {
	return s.paths
}

func (s *DirStore) availablePath(name site.Name) (string, error) {
	return within(s.paths.Available, name)
}

func (s *DirStore) enabledPath(name site.Name) (string, error) {
	return within(s.paths.Enabled, name)
}

// within joins root and name and checks that the result is a direct child
// of root. site.ParseName already guarantees this; the zero Name and any
// future loosening of ParseName are caught here.
func within(root string, name site.Name) (string, error) {
	if name.IsZero() {
		return "", errors.InvalidName("", "name cannot be empty")
	}
	p := filepath.Join(root, name.String())
	if filepath.Dir(p) != root {
		return "", errors.InvalidName(name.String(), "name resolves outside "+root)
	}
	return p, nil
}

// List returns all regular files and symlinks in sites-available, each
// with whether a same-named entry exists in sites-enabled. Directories and
// dot-files (including renameio temp files) are skipped.
func (s *DirStore) List() ([]site.Entry, error) {
	available, err := readNames(s.paths.Available)
	if err != nil {
		return nil, errors.IO("", "could not read "+s.paths.Available, err)
	}
	enabled, err := readNames(s.paths.Enabled)
	if err != nil {
		return nil, errors.IO("", "could not read "+s.paths.Enabled, err)
	}

	active := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		active[name] = true
	}

	entries := make([]site.Entry, 0, len(available))
	for _, name := range available {
		entries = append(entries, site.Entry{
			Name:      name,
			Available: true,
			Enabled:   active[name],
		})
	}
	return entries, nil
}

func readNames(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if isEntry(entry.Type()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Exists reports whether name is present in sites-available.
func (s *DirStore) Exists(name site.Name) (bool, error) {
	p, err := s.availablePath(name)
	if err != nil {
		return false, err
	}
	return present(name, p)
}

// IsActive reports whether name has a link in sites-enabled.
func (s *DirStore) IsActive(name site.Name) (bool, error) {
	p, err := s.enabledPath(name)
	if err != nil {
		return false, err
	}
	return present(name, p)
}

// present reports whether p is an entry List would show: a regular file
// or a symlink. Directories and other special files do not count.
func present(name site.Name, p string) (bool, error) {
	info, err := os.Lstat(p)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.IO(name.String(), "could not check "+p, err)
	}
	return isEntry(info.Mode()), nil
}

func isEntry(m fs.FileMode) bool {
	return m.IsRegular() || m&fs.ModeSymlink != 0
}

// Activate creates a symlink in sites-enabled pointing at the
// sites-available entry.
func (s *DirStore) Activate(name site.Name) error {
	source, err := s.availablePath(name)
	if err != nil {
		return err
	}
	target, err := s.enabledPath(name)
	if err != nil {
		return err
	}

	// No link may point at a missing configuration
	ok, err := present(name, source)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound(name.String())
	}

	if err := os.Symlink(source, target); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.AlreadyActive(name.String())
		}
		return errors.IO(name.String(), "could not create link", err)
	}
	return nil
}

// Deactivate removes the sites-enabled link for name. A regular file is
// only removed when it is a hard link to the sites-available entry.
func (s *DirStore) Deactivate(name site.Name) error {
	target, err := s.enabledPath(name)
	if err != nil {
		return err
	}

	info, err := os.Lstat(target)
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.NotActive(name.String())
	}
	if err != nil {
		return errors.IO(name.String(), "could not check link", err)
	}

	if info.Mode()&fs.ModeSymlink == 0 && !s.isHardLink(name, info) {
		return errors.IO(name.String(), "refusing to remove "+target, stderrors.New("not a link to "+s.paths.Available))
	}

	if err := os.Remove(target); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.NotActive(name.String())
		}
		return errors.IO(name.String(), "could not remove link", err)
	}
	return nil
}

func (s *DirStore) isHardLink(name site.Name, enabled fs.FileInfo) bool {
	source, err := s.availablePath(name)
	if err != nil {
		return false
	}
	available, err := os.Lstat(source)
	if err != nil {
		return false
	}
	return os.SameFile(available, enabled)
}

// Remove deactivates name if it is active, then deletes its file from
// sites-available.
func (s *DirStore) Remove(name site.Name) error {
	source, err := s.availablePath(name)
	if err != nil {
		return err
	}

	ok, err := present(name, source)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound(name.String())
	}

	if err := s.Deactivate(name); err != nil && !errors.Is(err, errors.ErrNotActive) {
		return err
	}

	if err := os.Remove(source); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.NotFound(name.String())
		}
		return errors.IO(name.String(), "could not remove configuration", err)
	}
	return nil
}

// Create writes content as a new sites-available entry. The file appears
// atomically with mode 0644. It is not activated.
func (s *DirStore) Create(name site.Name, content string) error {
	p, err := s.availablePath(name)
	if err != nil {
		return err
	}

	ok, err := present(name, p)
	if err != nil {
		return err
	}
	if ok {
		return errors.AlreadyExists(name.String())
	}

	pending, err := renameio.NewPendingFile(p, renameio.WithPermissions(0644))
	if err != nil {
		return errors.IO(name.String(), "could not create configuration", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.WriteString(content); err != nil {
		return errors.IO(name.String(), "could not write configuration", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.IO(name.String(), "could not write configuration", err)
	}
	return nil
}

// Read returns the content of a sites-available entry.
func (s *DirStore) Read(name site.Name) (string, error) {
	p, err := s.availablePath(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(p)
	if stderrors.Is(err, fs.ErrNotExist) {
		return "", errors.NotFound(name.String())
	}
	if err != nil {
		return "", errors.IO(name.String(), "could not read configuration", err)
	}
	return string(data), nil
}
