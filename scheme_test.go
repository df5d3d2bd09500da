// FILE: shelldeck/settings/scheme_test.go
package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestColorSchemeFromJSON tests parsing and color normalization
func TestColorSchemeFromJSON(t *testing.T) {
	doc := gjson.Parse(`{
		"name": "Test",
		"foreground": "#CCCCCC",
		"background": "#0c0c0c",
		"red": "#C50F1F"
	}`)
	require.True(t, validColorSchemeObject(doc))

	scheme, err := colorSchemeFromJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, "Test", scheme.Name)
	assert.Equal(t, "#cccccc", scheme.Foreground, "colors normalize to lowercase")
	assert.Equal(t, "#0c0c0c", scheme.Background)
	assert.Equal(t, "#c50f1f", scheme.Table[1])
	assert.Equal(t, "", scheme.Table[0], "absent entries stay empty")
}

// TestValidColorSchemeObject tests rejection of malformed schemes
func TestValidColorSchemeObject(t *testing.T) {
	assert.False(t, validColorSchemeObject(gjson.Parse(`"Campbell"`)))
	assert.False(t, validColorSchemeObject(gjson.Parse(`{"foreground": "#ffffff"}`)), "name is required")
	assert.False(t, validColorSchemeObject(gjson.Parse(`{"name": ""}`)))
	assert.False(t, validColorSchemeObject(gjson.Parse(`{"name": "x", "red": "red"}`)), "colors must be hex")
	assert.False(t, validColorSchemeObject(gjson.Parse(`{"name": "x", "red": 7}`)))
	assert.True(t, validColorSchemeObject(gjson.Parse(`{"name": "x", "red": "#ff0000"}`)))
}

// TestColorSchemeRoundTrip tests that toJSON emits what was parsed
func TestColorSchemeRoundTrip(t *testing.T) {
	scheme, err := colorSchemeFromJSON(gjson.Parse(`{
		"name": "Round",
		"foreground": "#aabbcc",
		"brightWhite": "#f2f2f2"
	}`))
	require.NoError(t, err)

	doc := gjson.Parse(scheme.toJSON())
	assert.Equal(t, "Round", doc.Get("name").String())
	assert.Equal(t, "#aabbcc", doc.Get("foreground").String())
	assert.Equal(t, "#f2f2f2", doc.Get("brightWhite").String())
	assert.False(t, doc.Get("background").Exists())
}
