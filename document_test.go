// FILE: shelldeck/settings/document_test.go
package settings

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestParseDocumentEmpty tests that blank input is an empty object
func TestParseDocumentEmpty(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t\n"} {
		doc, err := parseDocument(content)
		require.NoError(t, err)
		assert.True(t, doc.IsObject())
	}
}

// TestParseDocumentSyntaxError tests offset reporting for malformed input
func TestParseDocumentSyntaxError(t *testing.T) {
	_, err := parseDocument(`{"profiles": [}`)
	require.Error(t, err)

	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Greater(t, syn.Offset, int64(0))
	assert.Contains(t, err.Error(), "offset")
}

// TestMemberLiteralDots tests that dotted keys are plain key names
func TestMemberLiteralDots(t *testing.T) {
	doc := gjson.Parse(`{
		"experimental.rendering.software": true,
		"experimental": {"rendering": {"software": false}}
	}`)

	assert.True(t, member(doc, "experimental.rendering.software").Bool(),
		"the flat key wins, not the nested path")

	assert.False(t, member(gjson.Parse(`[1, 2]`), "experimental").Exists(),
		"member of a non-object is absent")
}

// TestEscapePathKey tests gjson metacharacter escaping
func TestEscapePathKey(t *testing.T) {
	assert.Equal(t, "plain", escapePathKey("plain"))
	assert.Equal(t, `a\.b`, escapePathKey("a.b"))
	assert.Equal(t, `experimental\.input\.forceVT`, escapePathKey("experimental.input.forceVT"))
	assert.Equal(t, `\*\?`, escapePathKey("*?"))
}

// TestLineAndColumnFromPosition tests offset-to-location conversion
func TestLineAndColumnFromPosition(t *testing.T) {
	content := "abc\ndef\nghi"

	cases := []struct {
		position     int
		line, column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{6, 2, 3},
		{8, 3, 1},
		{10, 3, 3},
	}
	for _, c := range cases {
		line, column := lineAndColumnFromPosition(content, c.position)
		assert.Equal(t, c.line, line, "position %d", c.position)
		assert.Equal(t, c.column, column, "position %d", c.position)
	}
}

// TestRenderJSONValue tests the diagnostic value rendering
func TestRenderJSONValue(t *testing.T) {
	doc := gjson.Parse(`{"s": "tall", "n": 42, "b": true, "z": null, "o": {"k": 1}, "a": [1]}`)

	assert.Equal(t, `"tall"`, renderJSONValue(doc.Get("s")))
	assert.Equal(t, "42", renderJSONValue(doc.Get("n")))
	assert.Equal(t, "true", renderJSONValue(doc.Get("b")))
	assert.Equal(t, "null", renderJSONValue(doc.Get("z")))
	assert.Equal(t, "array or object", renderJSONValue(doc.Get("o")))
	assert.Equal(t, "array or object", renderJSONValue(doc.Get("a")))
}

// TestFormatDeserializationError tests the user-facing message shape
func TestFormatDeserializationError(t *testing.T) {
	content := "{\n    \"initialRows\": \"tall\"\n}"
	doc, err := parseDocument(content)
	require.NoError(t, err)

	v := member(doc, "initialRows")
	require.True(t, v.Exists())

	de := &DeserializationError{Key: "initialRows", Expected: "integer", Value: v}
	msg := formatDeserializationError(de, content)

	line, column := lineAndColumnFromPosition(content, valueOffset(v))
	assert.Equal(t, 2, line)
	assert.Equal(t,
		fmt.Sprintf("* Line %d, Column %d (initialRows)\n  Have: \"tall\"\n  Expected: integer", line, column),
		msg)
}

// TestMarshalJSONString tests string literal rendering
func TestMarshalJSONString(t *testing.T) {
	assert.Equal(t, `"plain"`, marshalJSONString("plain"))
	assert.Equal(t, `"with \"quotes\""`, marshalJSONString(`with "quotes"`))
}
