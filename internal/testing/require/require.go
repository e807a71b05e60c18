// Package require includes test assertions to reduce boilerplate in the tests
// without pulling in an external dependency.
package require

import (
	"fmt"
	"reflect"
	"testing"
)

// Equal fails the test if `expected` is not equal to `actual`.
func Equal(t *testing.T, expected, actual interface{}, formatWithArgs ...interface{}) {
	t.Helper()
	if equal(expected, actual) {
		return
	}
	fail(t, fmt.Sprintf("expected %v, but was %v", expected, actual), formatWithArgs...)
}

// True fails the test if `actual` is false.
func True(t *testing.T, actual bool, formatWithArgs ...interface{}) {
	t.Helper()
	if !actual {
		fail(t, "expected true, but was false", formatWithArgs...)
	}
}

// False fails the test if `actual` is true.
func False(t *testing.T, actual bool, formatWithArgs ...interface{}) {
	t.Helper()
	if actual {
		fail(t, "expected false, but was true", formatWithArgs...)
	}
}

// Nil fails the test if `object` is not nil.
func Nil(t *testing.T, object interface{}, formatWithArgs ...interface{}) {
	t.Helper()
	if !isNil(object) {
		fail(t, fmt.Sprintf("expected nil, but was %v", object), formatWithArgs...)
	}
}

// NotNil fails the test if `object` is nil.
func NotNil(t *testing.T, object interface{}, formatWithArgs ...interface{}) {
	t.Helper()
	if isNil(object) {
		fail(t, "expected to not be nil", formatWithArgs...)
	}
}

// Panics fails the test if calling `fn` does not panic, and returns the recovered value.
func Panics(t *testing.T, fn func(), formatWithArgs ...interface{}) (recovered interface{}) {
	t.Helper()
	recovered = capturePanic(fn)
	if recovered == nil {
		fail(t, "expected to panic, but didn't", formatWithArgs...)
	}
	return
}

func capturePanic(fn func()) (recovered interface{}) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return
}

func equal(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return isNil(expected) && isNil(actual)
	}
	if b, ok := expected.([]byte); ok {
		if a, ok := actual.([]byte); ok {
			return string(b) == string(a)
		}
		return false
	}
	return reflect.DeepEqual(expected, actual)
}

func isNil(object interface{}) bool {
	if object == nil {
		return true
	}
	v := reflect.ValueOf(object)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// fail reports the message, appending the optional formatted context.
func fail(t *testing.T, message string, formatWithArgs ...interface{}) {
	t.Helper()
	if len(formatWithArgs) > 0 {
		if f, ok := formatWithArgs[0].(string); ok && len(formatWithArgs) > 1 {
			message += ": " + fmt.Sprintf(f, formatWithArgs[1:]...)
		} else {
			message += ": " + fmt.Sprint(formatWithArgs...)
		}
	}
	t.Fatal(message)
}
