// FILE: shelldeck/settings/validate_test.go
package settings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateUnknownColorScheme tests clearing dangling scheme references
func TestValidateUnknownColorScheme(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": [
			{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", "colorScheme": "Nope"},
			{"guid": "{0caa0dad-35be-5f56-a8ff-afceeeaa6101}", "colorScheme": "AlsoNope"}
		]
	}`)

	bashAppearance := s.FindProfile(bashGuid).DefaultAppearance()
	assert.False(t, bashAppearance.colorSchemeName.IsSet(), "the dangling reference is cleared")
	assert.Equal(t, "Campbell", bashAppearance.ColorSchemeName(),
		"resolution falls back to the inherited valid reference")

	count := 0
	for _, w := range s.Warnings() {
		if w == WarnUnknownColorScheme {
			count++
		}
	}
	assert.Equal(t, 1, count, "one warning no matter how many references were bad")
}

// TestValidateMissingDefaultProfile tests the fallback
func TestValidateMissingDefaultProfile(t *testing.T) {
	s := loadForTest(t, `{"defaultProfile": "{6239a42c-9999-49a3-80bd-e8fdd045185c}"}`)

	assert.Contains(t, s.Warnings(), WarnMissingDefaultProfile)
	assert.Equal(t, s.AllProfiles()[0].Guid(), s.Globals().DefaultProfile())
	require.NotNil(t, s.DefaultProfile())
}

// TestValidateDefaultProfileByName tests resolving a name as the default
func TestValidateDefaultProfileByName(t *testing.T) {
	s := loadForTest(t, `{"defaultProfile": "POSIX Shell"}`)

	assert.NotContains(t, s.Warnings(), WarnMissingDefaultProfile)
	assert.Equal(t, "POSIX Shell", s.DefaultProfile().Name())
}

// TestValidateInvalidIcon tests icon validation and the emoji exemption
func TestValidateInvalidIcon(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": [
			{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", "icon": "🚀"},
			{"guid": "{0caa0dad-35be-5f56-a8ff-afceeeaa6101}", "icon": "http://[::1/icon.png"}
		]
	}`)

	assert.Equal(t, "🚀", s.FindProfile(bashGuid).Icon(), "short glyph icons pass untouched")

	posix := s.ProfileByName("POSIX Shell")
	assert.Equal(t, "", posix.icon.Value())
	assert.Contains(t, s.Warnings(), WarnInvalidIcon)
}

// TestValidateInvalidBackgroundImage tests clearing unusable image paths
func TestValidateInvalidBackgroundImage(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": [
			{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}", "backgroundImage": "http://[::1/bg.png"}
		]
	}`)

	assert.Equal(t, "", s.FindProfile(bashGuid).DefaultAppearance().BackgroundImagePath())
	assert.Contains(t, s.Warnings(), WarnInvalidBackgroundImage)
}

// TestValidateInheritedInvalidIcon tests clearing a bad icon set by the defaults layer
func TestValidateInheritedInvalidIcon(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": {
			"defaults": {"icon": "http://[::1/icon.png"},
			"list": [{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}"}]
		}
	}`)

	assert.Contains(t, s.Warnings(), WarnInvalidIcon)
	assert.False(t, s.baseLayerProfile.icon.IsSet(), "the bad value is cleared on the layer that set it")
	assert.Equal(t, "", s.FindProfile(bashGuid).Icon(), "no profile resolves to the bad value anymore")
}

// TestValidateInheritedInvalidBackgroundImage tests clearing a bad image set by the defaults layer
func TestValidateInheritedInvalidBackgroundImage(t *testing.T) {
	s := loadForTest(t, `{
		"profiles": {
			"defaults": {"backgroundImage": "http://[::1/bg.png"},
			"list": [{"guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}"}]
		}
	}`)

	assert.Contains(t, s.Warnings(), WarnInvalidBackgroundImage)
	assert.False(t, s.baseLayerProfile.DefaultAppearance().backgroundImagePath.IsSet(),
		"the bad value is cleared on the layer that set it")
	assert.Equal(t, "", s.FindProfile(bashGuid).DefaultAppearance().BackgroundImagePath())
}

// TestValidateKeybindingWarningsMarker tests the leading marker warning
func TestValidateKeybindingWarningsMarker(t *testing.T) {
	s := loadForTest(t, `{"actions": [{"keys": "ctrl+q"}]}`)

	warnings := s.Warnings()
	marker := -1
	detail := -1
	for i, w := range warnings {
		switch w {
		case WarnAtLeastOneKeybinding:
			marker = i
		case WarnMissingRequiredParameter:
			detail = i
		}
	}
	require.GreaterOrEqual(t, marker, 0)
	require.GreaterOrEqual(t, detail, 0)
	assert.Less(t, marker, detail, "the marker precedes the individual warnings")
}

// TestValidateColorSchemeInCommands tests detection of bad scheme actions
func TestValidateColorSchemeInCommands(t *testing.T) {
	s := loadForTest(t, `{
		"actions": [
			{"command": {"action": "setColorScheme", "colorScheme": "Nope"}, "name": "Broken"}
		]
	}`)
	assert.Contains(t, s.Warnings(), WarnInvalidColorSchemeInCmd)

	s = loadForTest(t, `{
		"actions": [
			{"command": {"action": "setColorScheme", "colorScheme": "Campbell"}, "name": "Fine"}
		]
	}`)
	assert.NotContains(t, s.Warnings(), WarnInvalidColorSchemeInCmd)
}

// TestValidateUnknownTheme tests the theme name check
func TestValidateUnknownTheme(t *testing.T) {
	s := loadForTest(t, `{"theme": "solarized-disco"}`)
	assert.Contains(t, s.Warnings(), WarnUnknownTheme)

	s = loadForTest(t, `{"theme": "dark"}`)
	assert.NotContains(t, s.Warnings(), WarnUnknownTheme)

	s = loadForTest(t, `{}`)
	assert.NotContains(t, s.Warnings(), WarnUnknownTheme, "the default theme is known")
}

// TestValidateSplitSize tests the splitPane size range check
func TestValidateSplitSize(t *testing.T) {
	s := loadForTest(t, `{
		"actions": [
			{"command": {"action": "splitPane", "size": 1.5}, "name": "Huge Split"}
		]
	}`)
	assert.Contains(t, s.Warnings(), WarnInvalidSplitSize)

	s = loadForTest(t, `{
		"actions": [
			{"command": {"action": "splitPane", "size": 0.4}, "name": "Fine Split"}
		]
	}`)
	assert.NotContains(t, s.Warnings(), WarnInvalidSplitSize)
}

// TestValidResourcePath tests the path and URI acceptance rules
func TestValidResourcePath(t *testing.T) {
	assert.True(t, validResourcePath("/usr/share/icons/terminal.png"))
	assert.True(t, validResourcePath("relative/image.jpg"))
	assert.True(t, validResourcePath("https://example.com/bg.png"))
	assert.False(t, validResourcePath("bad\x00path"))
	assert.False(t, validResourcePath("http://[::1/broken"))
	assert.False(t, validResourcePath(strings.Repeat("a", 3)+"\n"))
}
