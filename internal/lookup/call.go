package lookup

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotFunc is returned by Call when the target is not a function.
var ErrNotFunc = errors.New("not a function")

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Call invokes fn with args, converting numeric and string arguments to the
// parameter types. Surplus arguments are dropped and missing ones are zero,
// so handlers may ignore arguments they do not declare. It returns the first
// result, and a trailing error result when present.
func Call(fn any, args ...any) (any, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("call %T: %w", fn, ErrNotFunc)
	}
	t := rv.Type()

	n := t.NumIn()
	in := make([]reflect.Value, 0, n)
	for i := 0; i < n; i++ {
		pt := t.In(i)
		if t.IsVariadic() && i == n-1 {
			for _, a := range argsFrom(args, i) {
				v, ok := convert(a, pt.Elem())
				if !ok {
					return nil, fmt.Errorf("call %s: argument %d: cannot use %T as %s", t, i, a, pt.Elem())
				}
				in = append(in, v)
			}
			break
		}
		var a any
		if i < len(args) {
			a = args[i]
		}
		v, ok := convert(a, pt)
		if !ok {
			return nil, fmt.Errorf("call %s: argument %d: cannot use %T as %s", t, i, a, pt)
		}
		in = append(in, v)
	}

	out := rv.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	var err error
	if last := out[len(out)-1]; last.Type().Implements(errorType) && !last.IsNil() {
		err = last.Interface().(error)
	}
	if out[0].Type().Implements(errorType) && len(out) == 1 {
		return nil, err
	}
	return out[0].Interface(), err
}

func argsFrom(args []any, i int) []any {
	if i >= len(args) {
		return nil
	}
	return args[i:]
}
