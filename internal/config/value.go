package config

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the shape of a configuration value. The same enum
// describes both the declared type of an option and the runtime variant
// of a RawValue, so a type check is a single comparison.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInteger
	KindStringList
)

// String returns a human-readable name for the kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindStringList:
		return "list-of-string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RawValue is a tagged variant over the scalar shapes a config document
// can hold. Every value flowing through the pipeline before validation is
// a RawValue; validation binds it to its option's declared type and no
// RawValue crosses that boundary.
type RawValue struct {
	kind Kind
	str  string
	b    bool
	i    int64
	list []string
}

// StringValue wraps a string as a RawValue.
func StringValue(s string) RawValue {
	return RawValue{kind: KindString, str: s}
}

// BoolValue wraps a bool as a RawValue.
func BoolValue(b bool) RawValue {
	return RawValue{kind: KindBool, b: b}
}

// IntegerValue wraps an integer as a RawValue.
func IntegerValue(i int64) RawValue {
	return RawValue{kind: KindInteger, i: i}
}

// StringListValue wraps a list of strings as a RawValue. The slice is
// copied so later mutation of the argument cannot leak into a layer.
func StringListValue(items []string) RawValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return RawValue{kind: KindStringList, list: cp}
}

// Kind reports which variant the value holds.
func (v RawValue) Kind() Kind { return v.kind }

// Str returns the string payload. Valid only for KindString.
func (v RawValue) Str() string { return v.str }

// Bool returns the bool payload. Valid only for KindBool.
func (v RawValue) Bool() bool { return v.b }

// Int returns the integer payload. Valid only for KindInteger.
func (v RawValue) Int() int64 { return v.i }

// List returns a copy of the list payload. Valid only for KindStringList.
func (v RawValue) List() []string {
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// bind converts the RawValue into the plain Go value collaborators see
// after validation: string, bool, int64 or []string.
func (v RawValue) bind() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInteger:
		return v.i
	default:
		return v.List()
	}
}

// GoString renders the value with its kind for error messages.
func (v RawValue) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("string(%q)", v.str)
	case KindBool:
		return fmt.Sprintf("bool(%v)", v.b)
	case KindInteger:
		return fmt.Sprintf("integer(%d)", v.i)
	default:
		return fmt.Sprintf("list-of-string([%s])", strings.Join(v.list, ", "))
	}
}

// rawValueOf converts a value produced by a document parser (or supplied
// over the LSP protocol) into a RawValue. Parsers disagree on number
// representation: TOML yields int64, YAML yields int, JSON yields float64.
// Integral floats are accepted as integers; anything else is rejected.
func rawValueOf(v any) (RawValue, bool) {
	switch t := v.(type) {
	case string:
		return StringValue(t), true
	case bool:
		return BoolValue(t), true
	case int:
		return IntegerValue(int64(t)), true
	case int64:
		return IntegerValue(t), true
	case uint64:
		if t > math.MaxInt64 {
			return RawValue{}, false
		}
		return IntegerValue(int64(t)), true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return RawValue{}, false
		}
		return IntegerValue(int64(t)), true
	case []string:
		return StringListValue(t), true
	case []any:
		items := make([]string, 0, len(t))
		for _, el := range t {
			s, ok := el.(string)
			if !ok {
				return RawValue{}, false
			}
			items = append(items, s)
		}
		return RawValue{kind: KindStringList, list: items}, true
	default:
		return RawValue{}, false
	}
}
