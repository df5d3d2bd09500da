// FILE: shelldeck/settings/decode.go
package settings

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// decodeField reads json[key] into f. An absent or null key leaves the
// field untouched, so repeated layering only overrides what the document
// actually mentions. A present value of the wrong type is a fatal
// DeserializationError carrying the offending value for location reporting.
func decodeField[T any](json gjson.Result, key string, f *Field[T]) error {
	v := member(json, key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}

	var target T
	if err := decodeValue(v, &target); err != nil {
		return &DeserializationError{
			Key:      key,
			Expected: typeName(reflect.TypeOf((*T)(nil)).Elem()),
			Value:    v,
		}
	}

	f.Set(target)
	return nil
}

// decodeValue converts a document value into target using mapstructure.
// Decoding is strict: numeric kinds convert between each other, but a
// string never silently becomes a number or bool and vice versa. A hook
// handles GUID-shaped strings (with or without braces).
func decodeValue(v gjson.Result, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		DecodeHook: stringToGUIDHook,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(v.Value())
}

var guidType = reflect.TypeOf(uuid.UUID{})

// stringToGUIDHook converts string values into uuid.UUID targets.
// uuid.Parse accepts both the plain and the brace-wrapped form.
func stringToGUIDHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != guidType {
		return data, nil
	}
	return uuid.Parse(data.(string))
}

// typeName renders a type for diagnostic messages in document terms.
func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if t == guidType {
		return "guid"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array of " + typeName(t.Elem())
	default:
		return t.String()
	}
}
