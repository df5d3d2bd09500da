// FILE: shelldeck/settings/decode_test.go
package settings

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestDecodeFieldBasics tests presence handling for absent and null keys
func TestDecodeFieldBasics(t *testing.T) {
	doc := gjson.Parse(`{"a": "x", "b": null}`)

	var f Field[string]
	require.NoError(t, decodeField(doc, "a", &f))
	assert.True(t, f.IsSet())
	assert.Equal(t, "x", f.Value())

	var absent Field[string]
	require.NoError(t, decodeField(doc, "missing", &absent))
	assert.False(t, absent.IsSet())

	var nulled Field[string]
	nulled.Set("keep")
	require.NoError(t, decodeField(doc, "b", &nulled))
	assert.Equal(t, "keep", nulled.Value(), "null leaves the field alone")
}

// TestDecodeFieldStrictTypes tests that cross-type coercion is rejected
func TestDecodeFieldStrictTypes(t *testing.T) {
	doc := gjson.Parse(`{"rows": "tall", "flag": 1, "size": 12}`)

	var rows Field[int]
	err := decodeField(doc, "rows", &rows)
	var de *DeserializationError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "rows", de.Key)
	assert.Equal(t, "integer", de.Expected)
	assert.Equal(t, `"tall"`, renderJSONValue(de.Value))

	var flag Field[bool]
	assert.Error(t, decodeField(doc, "flag", &flag), "a number is not a bool")

	var size Field[float64]
	require.NoError(t, decodeField(doc, "size", &size), "numeric kinds convert freely")
	assert.Equal(t, 12.0, size.Value())
}

// TestDecodeFieldGuid tests the uuid hook with both string forms
func TestDecodeFieldGuid(t *testing.T) {
	doc := gjson.Parse(`{
		"braced": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
		"plain": "61c54bbd-c2c6-5271-96e7-009a87ff44bf",
		"junk": "not-a-guid"
	}`)
	want := uuid.MustParse("61c54bbd-c2c6-5271-96e7-009a87ff44bf")

	var braced, plain Field[uuid.UUID]
	require.NoError(t, decodeField(doc, "braced", &braced))
	require.NoError(t, decodeField(doc, "plain", &plain))
	assert.Equal(t, want, braced.Value())
	assert.Equal(t, want, plain.Value())

	var junk Field[uuid.UUID]
	err := decodeField(doc, "junk", &junk)
	var de *DeserializationError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "guid", de.Expected)
}

// TestDecodeFieldSlices tests array decoding
func TestDecodeFieldSlices(t *testing.T) {
	doc := gjson.Parse(`{"sources": ["A", "B"], "mixed": ["A", 7]}`)

	var sources Field[[]string]
	require.NoError(t, decodeField(doc, "sources", &sources))
	assert.Equal(t, []string{"A", "B"}, sources.Value())

	var mixed Field[[]string]
	assert.Error(t, decodeField(doc, "mixed", &mixed))
}

// TestTypeName tests the document-term type rendering
func TestTypeName(t *testing.T) {
	assert.Equal(t, "string", typeName(reflect.TypeOf((*string)(nil)).Elem()))
	assert.Equal(t, "integer", typeName(reflect.TypeOf((*int)(nil)).Elem()))
	assert.Equal(t, "number", typeName(reflect.TypeOf((*float64)(nil)).Elem()))
	assert.Equal(t, "bool", typeName(reflect.TypeOf((*bool)(nil)).Elem()))
	assert.Equal(t, "guid", typeName(reflect.TypeOf((*uuid.UUID)(nil)).Elem()))
	assert.Equal(t, "array of string", typeName(reflect.TypeOf((*[]string)(nil)).Elem()))
	assert.Equal(t, "value", typeName(nil))
}
