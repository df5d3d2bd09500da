// FILE: shelldeck/settings/scheme.go
package settings

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
)

// colorTableKeys lists the 16 palette entries of a color scheme, in the
// order they are serialized.
var colorTableKeys = [16]string{
	"black", "red", "green", "yellow", "blue", "purple", "cyan", "white",
	"brightBlack", "brightRed", "brightGreen", "brightYellow",
	"brightBlue", "brightPurple", "brightCyan", "brightWhite",
}

// ColorScheme is a named, flat palette. Schemes are value-ish objects: the
// registry that holds them is the inheritable structure, not the scheme.
type ColorScheme struct {
	Name                string
	Foreground          string
	Background          string
	CursorColor         string
	SelectionBackground string
	Table               [16]string
}

// validColorSchemeObject reports whether a document value can become a
// color scheme: an object with a string name and parseable color values.
func validColorSchemeObject(json gjson.Result) bool {
	if !json.IsObject() {
		return false
	}
	name := member(json, "name")
	if name.Type != gjson.String || name.String() == "" {
		return false
	}
	valid := true
	json.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "name" {
			return true
		}
		if value.Type != gjson.String {
			valid = false
			return false
		}
		if _, err := colorful.Hex(value.String()); err != nil {
			valid = false
			return false
		}
		return true
	})
	return valid
}

// colorSchemeFromJSON builds a scheme from a validated document object.
// Color values are normalized to lowercase #rrggbb form.
func colorSchemeFromJSON(json gjson.Result) (*ColorScheme, error) {
	scheme := &ColorScheme{Name: member(json, "name").String()}
	if scheme.Name == "" {
		return nil, fmt.Errorf("color scheme has no name")
	}

	read := func(key string, dst *string) error {
		v := member(json, key)
		if !v.Exists() {
			return nil
		}
		c, err := colorful.Hex(v.String())
		if err != nil {
			return fmt.Errorf("color scheme %q: bad %s value %q: %w", scheme.Name, key, v.String(), err)
		}
		*dst = c.Hex()
		return nil
	}

	if err := read("foreground", &scheme.Foreground); err != nil {
		return nil, err
	}
	if err := read("background", &scheme.Background); err != nil {
		return nil, err
	}
	if err := read("cursorColor", &scheme.CursorColor); err != nil {
		return nil, err
	}
	if err := read("selectionBackground", &scheme.SelectionBackground); err != nil {
		return nil, err
	}
	for i, key := range colorTableKeys {
		if err := read(key, &scheme.Table[i]); err != nil {
			return nil, err
		}
	}

	return scheme, nil
}

// Copy returns a value copy of the scheme.
func (s *ColorScheme) Copy() *ColorScheme {
	dup := *s
	return &dup
}

// toJSON renders the scheme as a compact JSON object.
func (s *ColorScheme) toJSON() string {
	doc := "{}"
	doc = setString(doc, "name", s.Name)
	if s.Foreground != "" {
		doc = setString(doc, "foreground", s.Foreground)
	}
	if s.Background != "" {
		doc = setString(doc, "background", s.Background)
	}
	if s.CursorColor != "" {
		doc = setString(doc, "cursorColor", s.CursorColor)
	}
	if s.SelectionBackground != "" {
		doc = setString(doc, "selectionBackground", s.SelectionBackground)
	}
	for i, key := range colorTableKeys {
		if s.Table[i] != "" {
			doc = setString(doc, key, s.Table[i])
		}
	}
	return doc
}
