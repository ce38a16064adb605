package step

import (
	"reflect"
)

// Key identifies a result type. Two keys are equal only when they denote the
// exact same Go type, so a named type and a pointer to it are distinct keys.
//
// The zero Key stands for "no result".
type Key struct {
	t reflect.Type
}

// KeyOf returns the key for the type T.
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// KeyFor returns the key for the dynamic type of v.
func KeyFor(v interface{}) Key {
	if v == nil {
		return Key{}
	}
	return Key{t: reflect.TypeOf(v)}
}

func (k Key) IsZero() bool {
	return k.t == nil
}

// String returns the qualified type name, e.g. "steps.Pipe1Result".
func (k Key) String() string {
	if k.t == nil {
		return "<none>"
	}
	return k.t.String()
}

// ShortString returns the type name without package qualifier or pointer
// and slice markers, e.g. "Pipe1Result".
func (k Key) ShortString() string {
	if k.t == nil {
		return ""
	}
	t := k.t
	for t.Name() == "" && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// Accepts reports whether v can be stored under this key, i.e. whether its
// dynamic type is assignable to the key's type.
func (k Key) Accepts(v interface{}) bool {
	if k.t == nil || v == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(k.t)
}
