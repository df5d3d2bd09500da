// FILE: shelldeck/settings/state_test.go
package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplicationStateMissingFile tests that a fresh machine has empty state
func TestApplicationStateMissingFile(t *testing.T) {
	state, err := OpenApplicationState(filepath.Join(t.TempDir(), "nope", "state.toml"))
	require.NoError(t, err)
	assert.False(t, state.ProfileSeen(uuid.New()))
}

// TestApplicationStateRecordAndReopen tests persistence across opens
func TestApplicationStateRecordAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	a := uuid.New()
	b := uuid.New()

	state, err := OpenApplicationState(path)
	require.NoError(t, err)
	state.RecordProfiles([]uuid.UUID{a, b})
	require.NoError(t, state.Flush())

	reopened, err := OpenApplicationState(path)
	require.NoError(t, err)
	assert.True(t, reopened.ProfileSeen(a))
	assert.True(t, reopened.ProfileSeen(b))
	assert.False(t, reopened.ProfileSeen(uuid.New()))
}

// TestApplicationStateFlushOnlyWhenDirty tests the dirty tracking
func TestApplicationStateFlushOnlyWhenDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	state, err := OpenApplicationState(path)
	require.NoError(t, err)
	require.NoError(t, state.Flush())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing recorded, nothing written")

	guid := uuid.New()
	state.RecordProfiles([]uuid.UUID{guid})
	require.NoError(t, state.Flush())
	_, statErr = os.Stat(path)
	require.NoError(t, statErr)

	// recording a known guid again does not dirty the state
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	state.RecordProfiles([]uuid.UUID{guid})
	require.NoError(t, os.Remove(path))
	require.NoError(t, state.Flush())
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	assert.NotEmpty(t, before)
}

// TestApplicationStateCorruptFile tests recovery from unreadable state
func TestApplicationStateCorruptFile(t *testing.T) {
	SetLogger(nil)
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("seen_profiles = not toml"), 0o644))

	state, err := OpenApplicationState(path)
	require.NoError(t, err, "corrupt state resets instead of failing the load")
	assert.False(t, state.ProfileSeen(uuid.New()))

	state.RecordProfiles([]uuid.UUID{uuid.New()})
	require.NoError(t, state.Flush(), "the reset state can be written back")
}
