package handler

import (
	"reflect"
	"strings"
)

// sanitize trims surrounding whitespace from every settable string field of
// the struct v points to. Form posts from browsers routinely carry stray
// whitespace around hidden inputs. Fields tagged `sanitize:"-"` are kept
// verbatim.
func sanitize(v any) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	for i := range val.NumField() {
		if typ.Field(i).Tag.Get("sanitize") == "-" {
			continue
		}
		field := val.Field(i)
		if field.CanSet() && field.Kind() == reflect.String {
			field.SetString(strings.TrimSpace(field.String()))
		}
	}
}
