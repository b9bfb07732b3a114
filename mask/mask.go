// Package mask hides sensitive fields of messages before they are logged.
package mask

import (
	"fmt"
	"reflect"
	"strings"
)

const tagName = "mask"

// Fields flattens a struct into a map suitable for structured logging.
// Fields tagged with `mask:"true"` have their values replaced; nested structs are
// expanded with dotted keys. Names follow the json tag, then the yaml tag, then the
// field name; fields tagged "-" are omitted. Non-struct values are returned under
// the "value" key.
func Fields(v any) map[string]any {
	if v == nil {
		return nil
	}

	out := make(map[string]any)
	flatten(reflect.ValueOf(v), "", out)
	return out
}

func flatten(val reflect.Value, prefix string, out map[string]any) {
	if val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			out[keyOr(prefix)] = nil
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		out[keyOr(prefix)] = val.Interface()
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		name, skip := fieldName(fieldType)
		if skip {
			continue
		}
		if fieldType.Anonymous && fieldType.Tag.Get("json") == "" {
			name = ""
		}

		key := joinKey(prefix, name)
		field := val.Field(i)

		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			out[keyOr(key)] = maskValue(field)
		case isExpandable(field):
			flatten(field, key, out)
		default:
			out[keyOr(key)] = field.Interface()
		}
	}
}

func isExpandable(val reflect.Value) bool {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		val = val.Elem()
	}
	// time.Time and similar value types read better through their own formatting
	if _, ok := val.Interface().(fmt.Stringer); ok {
		return false
	}
	return val.Kind() == reflect.Struct
}

func maskValue(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds are masked by kind name
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if val.IsNil() {
			return nil
		}
	}

	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	if val.IsZero() {
		return val.Interface()
	}

	return fmt.Sprintf("***masked-%s***", val.Kind())
}

func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		v, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if v == "-" {
			return "", true
		}
		if name, _, _ := strings.Cut(v, ","); name != "" {
			return name, false
		}
	}
	return field.Name, false
}

func joinKey(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}

func keyOr(key string) string {
	if key == "" {
		return "value"
	}
	return key
}
