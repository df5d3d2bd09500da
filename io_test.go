// FILE: shelldeck/settings/io_test.go
package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestLoadAllFirstRun tests creating the settings file from the template
func TestLoadAllFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelldeck", "settings.json")

	s, err := LoadAll(path)
	require.NoError(t, err)
	assert.NotEmpty(t, s.AllProfiles())
	assert.NotEqual(t, "", s.Globals().UnparsedDefaultProfile(),
		"first run points the default profile at the first built-in")

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := gjson.ParseBytes(written)
	assert.Equal(t, helpURL, doc.Get("$help").String())
	assert.True(t, doc.Get("defaultProfile").Exists())
}

// TestLoadAllExistingFile tests a normal subsequent load
func TestLoadAllExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark"}`), 0o644))

	s, err := LoadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Globals().Theme())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"theme": "dark"}`, string(content), "a plain load never rewrites the file")
}

// TestLoadAllReportsLocation tests that load failures carry line and column
func TestLoadAllReportsLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{\n  \"initialRows\": \"tall\"\n}"), 0o644))

	_, err := LoadAll(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "Line 2")
	assert.Contains(t, err.Error(), "initialRows")

	require.NoError(t, os.WriteFile(path, []byte("{\n\"broken\n"), 0o644))
	_, err = LoadAll(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line ")
	assert.Contains(t, err.Error(), "column ")
}

// TestLoadMissingFile tests that Load never creates the settings file
func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrSettingsNotFound)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark"}`), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Globals().Theme())
}

// TestLoadDefaultsFallback tests the built-in-only tree
func TestLoadDefaultsFallback(t *testing.T) {
	s, err := LoadDefaults()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ActiveProfiles())
	require.NotNil(t, s.DefaultProfile())
	assert.NotNil(t, s.ColorSchemes()["Campbell"])
}

// TestSaveAndReload tests the write path end to end
func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	s, err := LoadAll(path)
	require.NoError(t, err)

	p := s.CreateNewProfile()
	p.SetCommandline("/bin/fish")
	require.NoError(t, Save(s, path))

	reloaded, err := LoadAll(path)
	require.NoError(t, err)
	saved := reloaded.ProfileByName(p.Name())
	require.NotNil(t, saved)
	assert.Equal(t, "/bin/fish", saved.Commandline())
}

// TestSaveKeepsBackup tests the timestamped backup of the previous file
func TestSaveKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark"}`), 0o644))

	s, err := LoadAll(path)
	require.NoError(t, err)
	require.NoError(t, Save(s, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	backups := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "settings.json.backup-") {
			backups++
			raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			assert.Equal(t, `{"theme": "dark"}`, string(raw))
		}
	}
	assert.Equal(t, 1, backups)

	// saving identical content again takes no new backup
	require.NoError(t, Save(s, path))
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	backups = 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "settings.json.backup-") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}
