// FILE: shelldeck/settings/container_test.go
package settings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProfileByNameGuidHeuristic tests guid-shaped lookup strings
func TestProfileByNameGuidHeuristic(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": [
			{"guid": "{0caa0dad-35be-5f56-a8ff-afceeeaa6101}", "name": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}"}
		]
	}`)

	// the lookup string is both a literal profile name and the guid of a
	// different profile; the guid interpretation wins
	p := s.ProfileByName("{61c54bbd-c2c6-5271-96e7-009a87ff44bf}")
	require.NotNil(t, p)
	assert.Equal(t, bashGuid, p.Guid())

	p = s.ProfileByName("Bash")
	require.NotNil(t, p)
	assert.Equal(t, "/bin/bash -l", p.Commandline())

	assert.Nil(t, s.ProfileByName("No Such Profile"))
}

// TestProfileForArgs tests the selector precedence
func TestProfileForArgs(t *testing.T) {
	s := loadForTest(t, `{}`)

	assert.Equal(t, s.DefaultProfile(), s.ProfileForArgs(NewTerminalArgs{}))

	one := 1
	assert.Equal(t, s.ActiveProfiles()[1], s.ProfileForArgs(NewTerminalArgs{ProfileIndex: &one}))

	neg := -1
	assert.Equal(t, s.DefaultProfile(), s.ProfileForArgs(NewTerminalArgs{ProfileIndex: &neg}))

	out := 99
	assert.Nil(t, s.ProfileForArgs(NewTerminalArgs{ProfileIndex: &out}))

	assert.Equal(t, s.ProfileByName("POSIX Shell"),
		s.ProfileForArgs(NewTerminalArgs{Profile: "POSIX Shell", ProfileIndex: &one}),
		"a name beats an index")
}

// TestProfileByIndexSkipsHidden tests that indexing uses the active list
func TestProfileByIndexSkipsHidden(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": [{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", "hidden": true}]
	}`)

	require.Len(t, s.AllProfiles(), 2)
	require.Len(t, s.ActiveProfiles(), 1)
	assert.Equal(t, "POSIX Shell", s.ProfileByIndex(0).Name())
	assert.Nil(t, s.ProfileByIndex(1))
}

// TestCreateNewProfile tests name probing and wiring
func TestCreateNewProfile(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": {
			"defaults": {"historySize": 7777},
			"list": [{"name": "Profile 3", "guid": "{6239a42c-6666-49a3-80bd-e8fdd045185c}"}]
		}
	}`)

	p := s.CreateNewProfile()
	assert.Equal(t, "Profile 4", p.Name())
	assert.NotEqual(t, uuid.Nil, p.Guid())
	assert.Equal(t, 7777, p.HistorySize(), "new profiles inherit the user defaults layer")
	assert.Contains(t, s.ActiveProfiles(), p)

	q := s.CreateNewProfile()
	assert.Equal(t, "Profile 5", q.Name())
	assert.NotEqual(t, p.Guid(), q.Guid())
}

// TestDuplicateProfile tests the selective copy rules
func TestDuplicateProfile(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": {
			"defaults": {"historySize": 7777},
			"list": [
				{
					"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
					"name": "Mine",
					"hidden": true,
					"opacity": 0.5,
					"unfocusedAppearance": {"background": "#101010"}
				}
			]
		}
	}`)

	source := s.FindProfile(bashGuid)
	require.NotNil(t, source)

	dup := s.DuplicateProfile(source)
	assert.Equal(t, "Mine (Copy)", dup.Name())
	assert.NotEqual(t, source.Guid(), dup.Guid())
	assert.False(t, dup.Hidden(), "the hidden flag is never copied")
	assert.Equal(t, 0.5, dup.Opacity())
	assert.Equal(t, "/bin/bash -l", dup.Commandline(), "values chosen by the inbox profile are materialized")
	assert.True(t, dup.commandline.IsSet())
	assert.False(t, dup.historySize.IsSet(), "values from the defaults layer are not")
	assert.Equal(t, 7777, dup.HistorySize(), "they still resolve through the layer")

	require.NotNil(t, dup.UnfocusedAppearance())
	assert.Equal(t, "#101010", dup.UnfocusedAppearance().Background())

	again := s.DuplicateProfile(source)
	assert.Equal(t, "Mine (Copy) (Copy)", again.Name())
}

// TestSettingsCopy tests the interning deep copy
func TestSettingsCopy(t *testing.T) {
	s := loadForTest(t, `{
		"theme": "dark",
		"profiles": [{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", "opacity": 0.9}]
	}`)

	dup := s.Copy()
	require.Len(t, dup.AllProfiles(), len(s.AllProfiles()))
	assert.Equal(t, "dark", dup.Globals().Theme())

	// every profile in the copy shares one clone of the defaults layer
	for _, p := range dup.AllProfiles() {
		require.NotEmpty(t, p.parents)
		assert.Same(t, dup.baseLayerProfile, p.parents[0])
		assert.NotSame(t, s.baseLayerProfile, p.parents[0])
	}

	assert.Equal(t, s.ToJSON(), dup.ToJSON(), "a fresh copy serializes identically")

	// edits to the copy stay in the copy
	dup.FindProfile(bashGuid).SetName("Changed")
	assert.NotEqual(t, "Changed", s.FindProfile(bashGuid).Name())

	// a base-layer edit in the copy reaches every copied profile at once
	dup.baseLayerProfile.padding.Set("9")
	for _, p := range dup.AllProfiles() {
		assert.Equal(t, "9", p.Padding())
	}
	assert.NotEqual(t, "9", s.FindProfile(bashGuid).Padding())
}

// TestUpdateColorSchemeReferences tests renaming a scheme everywhere
func TestUpdateColorSchemeReferences(t *testing.T) {
	s := loadForTest(t, `{
		"schemes": [{"name": "Mine", "background": "#000000"}],
		"profiles": {
			"defaults": {"colorScheme": "Mine"},
			"list": [{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", "colorScheme": "Mine"}]
		},
		"actions": [
			{"command": {"action": "setColorScheme", "colorScheme": "Mine"}, "name": "Use Mine"}
		]
	}`)

	s.UpdateColorSchemeReferences("Mine", "Renamed")

	assert.Nil(t, s.ColorSchemes()["Mine"])
	require.NotNil(t, s.ColorSchemes()["Renamed"])

	bash := s.FindProfile(bashGuid)
	assert.Equal(t, "Renamed", bash.DefaultAppearance().ColorSchemeName())
	assert.Equal(t, "Renamed", s.baseLayerProfile.DefaultAppearance().ColorSchemeName())

	name, _ := schemeNameFromCommand(s.ActionMap().Command("Use Mine"))
	assert.Equal(t, "Renamed", name)

	scheme := s.ColorSchemeForProfile(bash)
	require.NotNil(t, scheme)
	assert.Equal(t, "#000000", scheme.Background)
}
