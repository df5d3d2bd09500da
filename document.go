// FILE: shelldeck/settings/document.go
package settings

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// The document model is a thin boundary over tidwall/gjson: input text is
// parsed into a generic tree of null/bool/number/string/array/object
// values, each value remembering its byte offset in the source so that
// deserialization failures can be located precisely. gjson validates
// without reporting positions, so syntax errors are recovered through a
// second pass with encoding/json, whose SyntaxError carries the offset.

const emptyObjectJSON = "{}"

// parseDocument parses a settings document. Empty input parses as an
// empty object, matching the behavior for absent files.
func parseDocument(content string) (gjson.Result, error) {
	if strings.TrimSpace(content) == "" {
		content = emptyObjectJSON
	}

	if !gjson.Valid(content) {
		var probe any
		if err := json.Unmarshal([]byte(content), &probe); err != nil {
			if syn, ok := err.(*json.SyntaxError); ok {
				return gjson.Result{}, &SyntaxError{Offset: syn.Offset, Msg: syn.Error()}
			}
			return gjson.Result{}, &SyntaxError{Msg: err.Error()}
		}
		return gjson.Result{}, &SyntaxError{Msg: "malformed JSON document"}
	}

	return gjson.Parse(content), nil
}

// member returns the value for key in a JSON object, or a zero Result if
// the value is not an object or the key is absent. The key is escaped so
// that literal dots (e.g. "experimental.rendering.software") are not
// interpreted as gjson path separators.
func member(v gjson.Result, key string) gjson.Result {
	if !v.IsObject() {
		return gjson.Result{}
	}
	return v.Get(escapePathKey(key))
}

// escapePathKey escapes gjson path metacharacters in a literal object key.
func escapePathKey(key string) string {
	if !strings.ContainsAny(key, ".*?\\|@#") {
		return key
	}
	var sb strings.Builder
	sb.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '\\', '|', '@', '#':
			sb.WriteByte('\\')
		}
		sb.WriteByte(key[i])
	}
	return sb.String()
}

// valueOffset reports the byte offset of a parsed value in its source
// document. Values synthesized without a source report offset zero.
func valueOffset(v gjson.Result) int {
	return v.Index
}

// marshalJSONString renders s as a JSON string literal.
func marshalJSONString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
