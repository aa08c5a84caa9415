package util

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized checks whether all exported fields of the given struct
// (pointer) are non-nil, returning an error naming the first uninitialized
// field. Used by server readiness probes.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.New("not a struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		switch field.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if field.IsNil() {
				return fmt.Errorf("struct field %q is not initialized", v.Type().Field(i).Name)
			}
		default:
			// value types are always considered initialized
		}
	}

	return nil
}
