package studio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/kolam/pkg/errors"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// FileStore saves studio states as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a store rooted at baseDir.
// If baseDir is empty, defaults to $XDG_CONFIG_HOME/kolam/studio.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config dir")
		}
		baseDir = filepath.Join(dir, "kolam", "studio")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create studio dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) statePath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get loads the state saved under name.
func (s *FileStore) Get(name string) (State, error) {
	if !validName.MatchString(name) {
		return State{}, errors.New(errors.ErrCodeInvalidInput, "invalid session name: %q", name)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.statePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, errors.New(errors.ErrCodeNotFound, "no saved session %q", name)
		}
		return State{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read session %s", name)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse session %s", name)
	}
	st.Name = name
	return st, nil
}

// Set saves st under st.Name, replacing any previous save.
func (s *FileStore) Set(st State) error {
	if !validName.MatchString(st.Name) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid session name: %q", st.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal session")
	}
	if err := os.WriteFile(s.statePath(st.Name), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write session %s", st.Name)
	}
	return nil
}

// Delete removes a saved state. Deleting a missing state is not an error.
func (s *FileStore) Delete(name string) error {
	if !validName.MatchString(name) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid session name: %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.statePath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "remove session %s", name)
	}
	return nil
}

// List returns the names of all saved states in lexical order.
func (s *FileStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read studio dir")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Path returns the directory holding saved states.
func (s *FileStore) Path() string {
	return s.baseDir
}
