package structs

import (
	"reflect"
	"strings"
)

// Field is an exported struct field addressed by its JSON name.
type Field struct {
	Name  string
	Value reflect.Value
}

// IsString reports whether the field holds a string (or a named string type).
func (f Field) IsString() bool {
	return f.Value.Kind() == reflect.String
}

// IsZero reports whether the field holds its type's zero value.
func (f Field) IsZero() bool {
	return f.Value.IsZero()
}

// Fields returns the exported fields of v (a struct or pointer to struct) in
// declaration order. Fields are named after their json tag; untagged fields
// keep the Go name and fields tagged "-" are skipped.
func Fields(v any) []Field {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Type()
	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		if name == "" {
			continue
		}
		fields = append(fields, Field{Name: name, Value: rv.Field(i)})
	}
	return fields
}

// Names returns the JSON names of the exported fields of v.
func Names(v any) []string {
	fields := Fields(v)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether v exposes a field with the given JSON name.
func Has(v any, name string) bool {
	for _, n := range Names(v) {
		if n == name {
			return true
		}
	}
	return false
}

func jsonName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	default:
		return name
	}
}
