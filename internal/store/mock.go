package store

import (
	"sort"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/site"
)

// MockStore is an in-memory Store for CLI tests. Without overrides it
// behaves like DirStore on a map: Sites holds content by name and Active
// the enabled set.
type MockStore struct {
	paths Paths

	Sites  map[string]string
	Active map[string]bool

	// Function mocks - set these to customize behavior
	ListFunc       func() ([]site.Entry, error)
	ExistsFunc     func(name site.Name) (bool, error)
	IsActiveFunc   func(name site.Name) (bool, error)
	ActivateFunc   func(name site.Name) error
	DeactivateFunc func(name site.Name) error
	RemoveFunc     func(name site.Name) error
	CreateFunc     func(name site.Name, content string) error
	ReadFunc       func(name site.Name) (string, error)

	// Call tracking - check these to verify interactions
	ActivateCalls   []string
	DeactivateCalls []string
	RemoveCalls     []string
	CreateCalls     []CreateCall
	ListCalls       int
}

// CreateCall records arguments passed to Create
type CreateCall struct {
	Name    string
	Content string
}

// NewMockStore creates an empty MockStore
func NewMockStore(availableDir, enabledDir string) *MockStore {
	return &MockStore{
		paths:  Paths{Available: availableDir, Enabled: enabledDir},
		Sites:  make(map[string]string),
		Active: make(map[string]bool),
	}
}

// WithSite adds a site to the mock and returns it for chaining
func (m *MockStore) WithSite(name, content string, enabled bool) *MockStore {
	m.Sites[name] = content
	if enabled {
		m.Active[name] = true
	}
	return m
}

// Paths returns the configured paths
func (m *MockStore) Paths() Paths {
	return m.paths
}

// List returns the sites sorted by name
func (m *MockStore) List() ([]site.Entry, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	entries := make([]site.Entry, 0, len(m.Sites))
	for name := range m.Sites {
		entries = append(entries, site.Entry{Name: name, Available: true, Enabled: m.Active[name]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Exists invokes the mock function if set
func (m *MockStore) Exists(name site.Name) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(name)
	}
	_, ok := m.Sites[name.String()]
	return ok, nil
}

// IsActive invokes the mock function if set
func (m *MockStore) IsActive(name site.Name) (bool, error) {
	if m.IsActiveFunc != nil {
		return m.IsActiveFunc(name)
	}
	return m.Active[name.String()], nil
}

// Activate records the call and invokes the mock function if set
func (m *MockStore) Activate(name site.Name) error {
	m.ActivateCalls = append(m.ActivateCalls, name.String())
	if m.ActivateFunc != nil {
		return m.ActivateFunc(name)
	}
	if _, ok := m.Sites[name.String()]; !ok {
		return errors.NotFound(name.String())
	}
	if m.Active[name.String()] {
		return errors.AlreadyActive(name.String())
	}
	m.Active[name.String()] = true
	return nil
}

// Deactivate records the call and invokes the mock function if set
func (m *MockStore) Deactivate(name site.Name) error {
	m.DeactivateCalls = append(m.DeactivateCalls, name.String())
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(name)
	}
	if !m.Active[name.String()] {
		return errors.NotActive(name.String())
	}
	delete(m.Active, name.String())
	return nil
}

// Remove records the call and invokes the mock function if set
func (m *MockStore) Remove(name site.Name) error {
	m.RemoveCalls = append(m.RemoveCalls, name.String())
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	if _, ok := m.Sites[name.String()]; !ok {
		return errors.NotFound(name.String())
	}
	delete(m.Active, name.String())
	delete(m.Sites, name.String())
	return nil
}

// Create records the call and invokes the mock function if set
func (m *MockStore) Create(name site.Name, content string) error {
	m.CreateCalls = append(m.CreateCalls, CreateCall{Name: name.String(), Content: content})
	if m.CreateFunc != nil {
		return m.CreateFunc(name, content)
	}
	if _, ok := m.Sites[name.String()]; ok {
		return errors.AlreadyExists(name.String())
	}
	m.Sites[name.String()] = content
	return nil
}

// Read invokes the mock function if set
func (m *MockStore) Read(name site.Name) (string, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(name)
	}
	content, ok := m.Sites[name.String()]
	if !ok {
		return "", errors.NotFound(name.String())
	}
	return content, nil
}
