package validation

import (
	"math"
	"reflect"
)

// Sentinel replacements for non-finite values. JSON has no representation
// for NaN or infinities, so the report is made finite in a single walk
// before it leaves the validator.
const (
	nanSentinel    = 0.0
	posInfSentinel = 999.0
	negInfSentinel = -999.0
)

// Sanitize replaces every NaN and infinity reachable from r with a finite
// sentinel, in place. Map values must be pointers to be reachable; all
// report maps are.
func Sanitize(r *Report) {
	sanitizeValue(reflect.ValueOf(r))
}

func sanitizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			sanitizeValue(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			sanitizeValue(v.Field(i))
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			sanitizeValue(v.Index(i))
		}
	case reflect.Map:
		for _, key := range v.MapKeys() {
			elem := v.MapIndex(key)
			switch elem.Kind() {
			case reflect.Ptr, reflect.Interface:
				sanitizeValue(elem)
			case reflect.Float64:
				v.SetMapIndex(key, reflect.ValueOf(finite(elem.Float())))
			}
		}
	case reflect.Float64:
		if v.CanSet() {
			v.SetFloat(finite(v.Float()))
		}
	}
}

func finite(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return nanSentinel
	case math.IsInf(f, 1):
		return posInfSentinel
	case math.IsInf(f, -1):
		return negInfSentinel
	default:
		return f
	}
}
