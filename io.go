// FILE: shelldeck/settings/io.go
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "embed"
)

//go:embed defaults.json
var defaultsJSON string

// userSettingsTemplate seeds a brand-new user document. The loader fills
// in the default profile guid on first run.
const userSettingsTemplate = `{
    "$help": "` + helpURL + `",
    "$schema": "` + schemaURL + `",
    "profiles": {
        "defaults": {},
        "list": []
    }
}
`

// LoadAll reads the user settings file at path and layers it over the
// built-in defaults, running generators and fragment merging along the
// way. A missing file is created from the stock template and treated as
// a first run. Parse and deserialization failures of the user document
// are fatal; the returned error carries the offending location so hosts
// can show it instead of silently clobbering the file.
func LoadAll(path string, opts ...LoaderOption) (*Settings, error) {
	content, firstRun, err := readUserSettings(path)
	if err != nil {
		return nil, err
	}

	s, err := NewLoader(opts...).Load(defaultsJSON, content, firstRun)
	if err != nil {
		return nil, describeLoadFailure(err, path, content)
	}

	if firstRun {
		if saveErr := Save(s, path); saveErr != nil {
			logger.Warn("failed to write initial settings file", "path", path, "error", saveErr)
			s.warnings = append(s.warnings, WarnFailedToWriteSettings)
		}
	}
	return s, nil
}

// Load is LoadAll without the first-run behavior: a missing user file is
// an error (wrapping ErrSettingsNotFound) instead of a template, and
// nothing is ever written. Hosts use it to probe for existing settings.
func Load(path string, opts ...LoaderOption) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrSettingsNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	content := string(raw)
	s, err := NewLoader(opts...).Load(defaultsJSON, content, false)
	if err != nil {
		return nil, describeLoadFailure(err, path, content)
	}
	return s, nil
}

// LoadDefaults builds a settings tree from the built-in defaults alone,
// the fallback hosts use when the user document is unusable.
func LoadDefaults() (*Settings, error) {
	return NewLoader().Load(defaultsJSON, "", false)
}

func readUserSettings(path string) (content string, firstRun bool, err error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return userSettingsTemplate, true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read settings file: %w", err)
	}
	return string(raw), false, nil
}

// describeLoadFailure attaches document locations to parse errors, which
// only carry byte offsets on their own.
func describeLoadFailure(err error, path, content string) error {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		line, column := lineAndColumnFromPosition(content, int(syn.Offset))
		return fmt.Errorf("%s: line %d, column %d: %w", path, line, column, err)
	}
	var de *DeserializationError
	if errors.As(err, &de) {
		return fmt.Errorf("%s:\n%s: %w", path, formatDeserializationError(de, content), err)
	}
	return err
}

// Save serializes the tree and replaces the settings file at path. The
// previous file is kept as a timestamped backup on a best-effort basis,
// and the write itself goes through a temp file and rename so a crash
// cannot leave a half-written document.
func Save(s *Settings, path string) error {
	content := s.ToJSON()

	if old, err := os.ReadFile(path); err == nil && string(old) != content {
		backup := fmt.Sprintf("%s.backup-%s", path, time.Now().Format("20060102-150405"))
		if err := os.WriteFile(backup, old, 0o644); err != nil {
			logger.Warn("failed to back up settings file", "path", backup, "error", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
