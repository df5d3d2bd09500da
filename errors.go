package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrSettingsNotFound is returned when the user settings file does not exist.
var ErrSettingsNotFound = errors.New("settings file not found")

// LoadErrorReason classifies structurally fatal load failures.
type LoadErrorReason string

const (
	// NoProfiles means layering produced an empty profile list.
	NoProfiles LoadErrorReason = "no profiles"
	// AllProfilesHidden means every profile in the list is hidden.
	AllProfilesHidden LoadErrorReason = "all profiles hidden"
)

// LoadError is a fatal, structural load failure. Callers are expected to
// fall back to the in-box defaults and surface the reason to the user.
type LoadError struct {
	Reason LoadErrorReason
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("settings could not be loaded: %s", e.Reason)
}

// Warning identifies a recoverable problem found during load or validation.
// Warnings never abort a load; each category is reported at most once no
// matter how many individual instances were found.
type Warning string

const (
	WarnMissingDefaultProfile     Warning = "missing default profile"
	WarnDuplicateProfile          Warning = "duplicate profile"
	WarnUnknownColorScheme        Warning = "unknown color scheme"
	WarnInvalidBackgroundImage    Warning = "invalid background image"
	WarnInvalidIcon               Warning = "invalid icon"
	WarnAtLeastOneKeybinding      Warning = "at least one keybinding warning"
	WarnTooManyKeysForChord       Warning = "too many keys for chord"
	WarnMissingRequiredParameter  Warning = "missing required parameter"
	WarnFailedToParseCommandJSON  Warning = "failed to parse command"
	WarnInvalidColorSchemeInCmd   Warning = "invalid color scheme in command"
	WarnInvalidSplitSize          Warning = "invalid split size"
	WarnFailedToWriteSettings     Warning = "failed to write settings"
	WarnDuplicateRemappedScheme   Warning = "duplicate remapped color scheme"
	WarnUnknownTheme              Warning = "unknown theme"
)

// SyntaxError reports malformed JSON in one of the input documents,
// carrying the byte offset at which parsing failed.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at offset %d: %s", e.Offset, e.Msg)
}

// DeserializationError reports a typed-deserialization mismatch: a key was
// present but its value could not be converted to the expected type. The
// offending value retains its byte offset so the loader can recompute a
// 1-based line and column against the raw document text.
type DeserializationError struct {
	Key      string
	Expected string
	Value    gjson.Result
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("unexpected value for %q: have %s, expected %s", e.Key, renderJSONValue(e.Value), e.Expected)
}

// renderJSONValue produces a short diagnostic rendering of a JSON value.
// Arrays and objects are not stringified.
func renderJSONValue(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return fmt.Sprintf("%q", v.String())
	case gjson.JSON:
		return "array or object"
	case gjson.Null:
		return "null"
	default:
		return v.Raw
	}
}

// lineAndColumnFromPosition converts a byte offset into a 1-based line and
// column pair by scanning newline positions in the raw document text.
func lineAndColumnFromPosition(content string, position int) (line, column int) {
	line = 1
	pos := 0

	for {
		p := strings.IndexByte(content[pos:], '\n')
		if p < 0 || pos+p >= position {
			break
		}
		pos += p + 1
		line++
	}

	return line, position - pos + 1
}

// formatDeserializationError renders a DeserializationError into the
// human-readable multi-line message surfaced to the user, including the
// 1-based location of the offending value in the raw document.
func formatDeserializationError(e *DeserializationError, content string) string {
	line, column := lineAndColumnFromPosition(content, valueOffset(e.Value))

	var sb strings.Builder
	fmt.Fprintf(&sb, "* Line %d, Column %d", line, column)
	if e.Key != "" {
		fmt.Fprintf(&sb, " (%s)", e.Key)
	}
	fmt.Fprintf(&sb, "\n  Have: %s\n  Expected: %s", renderJSONValue(e.Value), e.Expected)
	return sb.String()
}
