// Package scripts persists named scripts as one file per script.
package scripts

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// DefaultExtension is appended to script names on disk.
const DefaultExtension = ".py"

// Store keeps scripts under a root directory, created lazily on first write.
// Concurrent saves of the same name are last-writer-wins.
type Store struct {
	root string
	ext  string
	mu   sync.Mutex
}

// NewStore builds a store rooted at dir. An empty ext defaults to ".py".
func NewStore(dir, ext string) *Store {
	if ext == "" {
		ext = DefaultExtension
	}
	return &Store{root: dir, ext: ext}
}

// Root returns the backing directory.
func (s *Store) Root() string {
	return s.root
}

// Save validates and writes (or overwrites) root/name+ext. Validation errors
// occur before any filesystem side effect.
func (s *Store) Save(name, body string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return &domain.ValidationError{Field: "body", Reason: "script body is empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.root, domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(s.pathFor(name), []byte(body), domain.ScriptFilePermissions)
}

// List enumerates stored script names in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), s.ext))
	}
	return names, nil
}

// Load returns the script body, or domain.ErrScriptNotFound.
func (s *Store) Load(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrScriptNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Delete removes the script, reporting absence rather than treating the
// delete as an idempotent no-op.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.pathFor(name)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrScriptNotFound
		}
		return err
	}
	return nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.root, name+s.ext)
}

// validateName rejects names that are empty or would escape the store root.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "script name is empty"}
	}
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return &domain.ValidationError{Field: "name", Reason: "script name must be a bare file name"}
	}
	return nil
}

var _ ports.ScriptStore = (*Store)(nil)
