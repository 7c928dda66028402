package safetext

import (
	"html/template"
	"reflect"

	"github.com/spf13/cast"
)

// Text is a rendered fragment together with its escaping state.
// The only implementations are Safe and Unsafe.
type Text interface {
	String() string
	IsSafe() bool
	sealed()
}

// Safe is content that must not be escaped again.
type Safe string

// Unsafe is content that still needs escaping before emission.
type Unsafe string

func (s Safe) String() string {
	return string(s)
}

func (Safe) IsSafe() bool {
	return true
}

func (Safe) sealed() {}

func (u Unsafe) String() string {
	return string(u)
}

func (Unsafe) IsSafe() bool {
	return false
}

func (Unsafe) sealed() {}

// Tagger is implemented by values that carry their own Text, such as
// buffer frames.
type Tagger interface {
	Text() Text
}

// Concat joins two fragments. The result is Safe only if both sides are.
func Concat(a, b Text) Text {
	switch {
	case a == nil && b == nil:
		return Safe("")
	case a == nil:
		return b
	case b == nil:
		return a
	}
	joined := a.String() + b.String()
	if a.IsSafe() && b.IsSafe() {
		return Safe(joined)
	}
	return Unsafe(joined)
}

// IsSafe reports whether v is tagged as safe to emit verbatim.
func IsSafe(v any) bool {
	switch t := v.(type) {
	case Text:
		return t.IsSafe()
	case template.HTML:
		return true
	case Tagger:
		return t.Text().IsSafe()
	case interface{ IsSafe() bool }:
		return t.IsSafe()
	default:
		return false
	}
}

// IsNil reports whether v is absent: an untyped nil or a nil pointer,
// interface, map, slice, func or channel.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Normalize returns t as a Safe or Unsafe value. Pointers to either type
// satisfy Text too; they are dereferenced, and a nil pointer or nil Text
// becomes an empty fragment of the same safety.
func Normalize(t Text) Text {
	switch v := t.(type) {
	case Safe:
		return v
	case Unsafe:
		return v
	case *Safe:
		if v == nil {
			return Safe("")
		}
		return *v
	case *Unsafe:
		if v == nil {
			return Unsafe("")
		}
		return *v
	case nil:
		return Safe("")
	}
	if t.IsSafe() {
		return Safe(t.String())
	}
	return Unsafe(t.String())
}

// Coerce converts v to its display form. Values that already carry a tag
// keep it; html/template.HTML is Safe; everything else cast can render
// becomes Unsafe. Values without a display form (maps, structs, channels,
// funcs) return the conversion error.
//
// Callers are expected to filter nil with IsNil first.
func Coerce(v any) (Text, error) {
	switch t := v.(type) {
	case nil:
		return Unsafe(""), nil
	case Text:
		return Normalize(t), nil
	case template.HTML:
		return Safe(t), nil
	case Tagger:
		return Normalize(t.Text()), nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	return Unsafe(s), nil
}
