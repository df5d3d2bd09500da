// FILE: shelldeck/settings/serialize.go
package settings

import (
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const (
	helpURL   = "https://shelldeck.dev/docs/settings"
	schemaURL = "https://shelldeck.dev/schemas/settings.json"
)

// The serializer rebuilds the user document from the user-layer state of
// the tree. Only locally-set fields are emitted, so values that resolved
// through inheritance never materialize in the file, and loading then
// saving an untouched tree reproduces the same document.

// ToJSON renders the settings as the user document text, formatted with
// four-space indentation.
func (s *Settings) ToJSON() string {
	doc := emptyObjectJSON
	doc = setString(doc, "$help", helpURL)
	doc = setString(doc, "$schema", schemaURL)

	doc = s.globals.emitJSON(doc)

	profiles := emptyObjectJSON
	profiles = setRaw(profiles, "defaults", s.baseLayerProfile.toJSON())
	list := "[]"
	for _, p := range s.allProfiles {
		if p.Deleted() {
			continue
		}
		list = appendRaw(list, p.toJSON())
	}
	profiles = setRaw(profiles, "list", list)
	doc = setRaw(doc, "profiles", profiles)

	if len(s.globals.schemeOrder) > 0 {
		schemes := "[]"
		for _, name := range s.globals.schemeOrder {
			if scheme := s.globals.colorSchemes[name]; scheme != nil {
				schemes = appendRaw(schemes, scheme.toJSON())
			}
		}
		doc = setRaw(doc, "schemes", schemes)
	}

	if actions := s.ActionMap(); len(actions.order) > 0 {
		doc = setRaw(doc, "actions", actions.toJSON())
	}

	return string(pretty.PrettyOptions([]byte(doc), &pretty.Options{
		Indent:   "    ",
		SortKeys: false,
	}))
}

// setString sets a string value at a literal key.
func setString(doc, key, value string) string {
	out, err := sjson.Set(doc, escapePathKey(key), value)
	if err != nil {
		return doc
	}
	return out
}

// setRaw splices pre-rendered JSON in at a literal key.
func setRaw(doc, key, raw string) string {
	out, err := sjson.SetRaw(doc, escapePathKey(key), raw)
	if err != nil {
		return doc
	}
	return out
}

// setAny sets any JSON-marshalable value at a literal key.
func setAny(doc, key string, value any) string {
	out, err := sjson.Set(doc, escapePathKey(key), value)
	if err != nil {
		return doc
	}
	return out
}

// appendRaw appends pre-rendered JSON to an array document.
func appendRaw(arr, raw string) string {
	out, err := sjson.SetRaw(arr, "-1", raw)
	if err != nil {
		return arr
	}
	return out
}

// setStringSlice sets a string array at a literal key.
func setStringSlice(doc, key string, values []string) string {
	arr := "[]"
	for _, v := range values {
		arr = appendRaw(arr, marshalJSONString(v))
	}
	return setRaw(doc, key, arr)
}

func setIfString(doc, key string, f *Field[string]) string {
	if !f.IsSet() {
		return doc
	}
	return setString(doc, key, f.Value())
}

func setIfBool(doc, key string, f *Field[bool]) string {
	if !f.IsSet() {
		return doc
	}
	return setAny(doc, key, f.Value())
}

func setIfInt(doc, key string, f *Field[int]) string {
	if !f.IsSet() {
		return doc
	}
	return setAny(doc, key, f.Value())
}

func setIfFloat(doc, key string, f *Field[float64]) string {
	if !f.IsSet() {
		return doc
	}
	return setAny(doc, key, f.Value())
}
