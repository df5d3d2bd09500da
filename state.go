// FILE: shelldeck/settings/state.go
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// ApplicationState is the small persistent store kept next to the
// settings file. It remembers which generated and inbox profiles the
// machine has produced before, so a profile missing from the user file
// can be told apart from one that is merely new on this run.
type ApplicationState struct {
	mu    sync.Mutex
	path  string
	dirty bool
	data  stateData
}

type stateData struct {
	// SeenProfiles holds the guids of every non-user profile that has
	// appeared in a load on this machine.
	SeenProfiles []string `toml:"seen_profiles"`
}

// OpenApplicationState loads the state file at path. A missing file is
// not an error; it simply yields empty state, as on a fresh machine.
func OpenApplicationState(path string) (*ApplicationState, error) {
	state := &ApplicationState{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read application state: %w", err)
	}
	if err := toml.Unmarshal(raw, &state.data); err != nil {
		// Corrupt state only costs the deleted-profile bookkeeping.
		// Starting over is better than refusing to load settings.
		logger.Warn("discarding unreadable application state", "path", path, "error", err)
		state.data = stateData{}
	}
	return state, nil
}

// ProfileSeen reports whether the guid was recorded by a previous run.
func (s *ApplicationState) ProfileSeen(guid uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.data.SeenProfiles {
		if g == guid.String() {
			return true
		}
	}
	return false
}

// RecordProfiles adds guids to the seen set. Unknown guids mark the state
// dirty; Flush persists them.
func (s *ApplicationState) RecordProfiles(guids []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.data.SeenProfiles))
	for _, g := range s.data.SeenProfiles {
		seen[g] = struct{}{}
	}
	for _, g := range guids {
		key := g.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		s.data.SeenProfiles = append(s.data.SeenProfiles, key)
		s.dirty = true
	}
}

// Flush writes the state file if anything changed since the last flush.
// The write goes through a temp file in the same directory followed by a
// rename, so readers never observe a torn file.
func (s *ApplicationState) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	sort.Strings(s.data.SeenProfiles)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(s.data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode application state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.dirty = false
	return nil
}
