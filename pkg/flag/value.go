package flag

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies the payload type every variant of a feature must share.
type ValueKind string

const (
	KindNull    ValueKind = "null"
	KindInteger ValueKind = "integer"
	KindFloat   ValueKind = "float"
	KindBoolean ValueKind = "boolean"
	KindString  ValueKind = "string"
)

// kindAliases maps accepted configuration spellings to canonical kinds.
var kindAliases = map[string]ValueKind{
	"int":     KindInteger,
	"integer": KindInteger,
	"float":   KindFloat,
	"bool":    KindBoolean,
	"boolean": KindBoolean,
	"string":  KindString,
}

// ParseValueKind resolves a configuration spelling ("int", "integer", "bool", ...)
// to its canonical ValueKind.
func ParseValueKind(s string) (ValueKind, error) {
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	return "", errors.Join(ErrInvalidConfig, fmt.Errorf("unknown value type: %q", s))
}

// UnmarshalJSON accepts kind aliases used by configuration files.
func (k *ValueKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseValueKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// UnmarshalYAML accepts kind aliases used by configuration files.
func (k *ValueKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	kind, err := ParseValueKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Value is the payload of a feature variant: null, integer, float, boolean,
// or string. The zero Value is null. Values are immutable after construction.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Integer wraps an int64 payload.
func Integer(v int64) Value { return Value{kind: KindInteger, i: v} }

// Float wraps a float64 payload.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Boolean wraps a bool payload.
func Boolean(v bool) Value { return Value{kind: KindBoolean, b: v} }

// String wraps a string payload.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind reports the payload type. The zero Value reports KindNull.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindNull
	}
	return v.kind
}

// Is reports whether the value has the given kind.
func (v Value) Is(k ValueKind) bool { return v.Kind() == k }

// Int returns the integer payload, or 0 for other kinds.
func (v Value) Int() int64 { return v.i }

// Float64 returns the float payload, or 0 for other kinds.
func (v Value) Float64() float64 { return v.f }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() string { return v.s }

// Any returns the payload as a plain Go value (nil, int64, float64, bool, string),
// the representation attribute maps and tracking events use.
func (v Value) Any() any {
	switch v.Kind() {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindBoolean:
		return v.b
	case KindString:
		return v.s
	default:
		return nil
	}
}

// MarshalJSON writes the payload untagged, matching the configuration format.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON reads an untagged payload. Numbers without a fractional part
// decode as integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// MarshalYAML writes the payload untagged.
func (v Value) MarshalYAML() (any, error) {
	return v.Any(), nil
}

// UnmarshalYAML reads an untagged payload.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	val, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// fromAny converts a decoded JSON/YAML scalar into a Value.
func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Boolean(t), nil
	case string:
		return String(t), nil
	case int:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Integer(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Float(f), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Equal reports payload equality. Integer and float payloads are distinct kinds
// and never equal each other.
func (v Value) Equal(o Value) bool { return v == o }
