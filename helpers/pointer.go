package helpers

import "reflect"

// StrPanic panics with panicMessage when p is empty, otherwise returns p unchanged.
// Only p == "" is checked; whitespace is accepted.
//
// Called from constructors that need a mandatory string (service name, instance name).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage when v is nil, including typed nils (pointer, slice, map, chan, func, interface).
// Returns v unchanged otherwise, so it can wrap a constructor argument inline.
//
// Called from service.NewClient, service.NewTimeProvider, adapters.NewInstanceManagerGRPC,
// and adapters.NewEnvConfigResolver when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
