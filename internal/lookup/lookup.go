// Package lookup walks dotted property paths through Go values with reflection.
package lookup

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Indexer is implemented by ordered collections that are not slices.
type Indexer interface {
	Count() int
	At(i int) any
}

// Split breaks a dotted path into segments. An empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Get resolves segments starting at root. It stops with ok=false at the
// first segment that cannot be found.
func Get(root any, segments []string) (any, bool) {
	cur := root
	for _, seg := range segments {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func step(cur any, seg string) (any, bool) {
	if cur == nil {
		return nil, false
	}
	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[seg]
		return v, ok
	case Indexer:
		if seg == "length" || seg == "count" {
			return c.Count(), true
		}
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= c.Count() {
			return nil, false
		}
		return c.At(i), true
	}

	rv := reflect.ValueOf(cur)
	if m, ok := method(rv, seg); ok {
		return m.Interface(), true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		f, ok := field(rv, seg)
		if !ok {
			return nil, false
		}
		return f.Interface(), true
	case reflect.Slice, reflect.Array, reflect.String:
		if seg == "length" || seg == "count" {
			return rv.Len(), true
		}
		if rv.Kind() == reflect.String {
			return nil, false
		}
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// Set assigns value at segments below root. Maps and pointers to structs are
// writable; anything else reports false.
func Set(root any, segments []string, value any) bool {
	if len(segments) == 0 {
		return false
	}
	parent, ok := Get(root, segments[:len(segments)-1])
	if !ok || parent == nil {
		return false
	}
	last := segments[len(segments)-1]

	if m, ok := parent.(map[string]any); ok {
		m[last] = value
		return true
	}

	rv := reflect.ValueOf(parent)
	for rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return false
		}
		v, ok := convert(value, rv.Type().Elem())
		if !ok {
			return false
		}
		rv.SetMapIndex(reflect.ValueOf(last).Convert(rv.Type().Key()), v)
		return true
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return false
		}
		f, ok := field(rv.Elem(), last)
		if !ok || !f.CanSet() {
			return false
		}
		v, ok := convert(value, f.Type())
		if !ok {
			return false
		}
		f.Set(v)
		return true
	}
	return false
}

// field finds an exported struct field by exact name, then case-insensitively.
func field(rv reflect.Value, name string) (reflect.Value, bool) {
	if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
		return f, true
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, name) {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func method(rv reflect.Value, name string) (reflect.Value, bool) {
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	if m := rv.MethodByName(name); m.IsValid() {
		return m, true
	}
	if up := exported(name); up != name {
		if m := rv.MethodByName(up); m.IsValid() {
			return m, true
		}
	}
	return reflect.Value{}, false
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func convert(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		return reflect.Zero(t), true
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, true
	}
	if numeric(v.Kind()) && numeric(t.Kind()) {
		return v.Convert(t), true
	}
	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
