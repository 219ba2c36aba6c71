package models

import (
	"bytes"
	"fmt"
	"slices"
	"time"
)

// ValueKind tags the scalar type stored in a [Value].
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindBytes
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindBytes:
		return "bytes"
	default:
		return "invalid"
	}
}

// Value is a tagged scalar property value. Records are never property values;
// a record references another record only through a relationship.
type Value struct {
	Kind  ValueKind `json:"kind" cbor:"1,keyasint"`
	Str   string    `json:"str,omitempty" cbor:"2,keyasint,omitempty"`
	Int   int64     `json:"int,omitempty" cbor:"3,keyasint,omitempty"`
	Float float64   `json:"float,omitempty" cbor:"4,keyasint,omitempty"`
	Bool  bool      `json:"bool,omitempty" cbor:"5,keyasint,omitempty"`
	Time  time.Time `json:"time,omitzero" cbor:"6,keyasint"`
	Bytes []byte    `json:"bytes,omitempty" cbor:"7,keyasint,omitempty"`
}

func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func IntValue(i int64) Value      { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t.UTC()} }
func BytesValue(b []byte) Value   { return Value{Kind: KindBytes, Bytes: slices.Clone(b)} }

// Interface returns the underlying Go value.
func (v Value) Interface() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindTime:
		return v.Time
	case KindBytes:
		return v.Bytes
	default:
		return nil
	}
}

// Equal reports whether v and other hold the same kind and scalar.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float
	case KindBool:
		return v.Bool == other.Bool
	case KindTime:
		return v.Time.Equal(other.Time)
	case KindBytes:
		return bytes.Equal(v.Bytes, other.Bytes)
	default:
		return true
	}
}

// Validate returns an error wrapping [ErrUnsupportedValueKind] for values
// whose kind is not a supported scalar kind.
func (v Value) Validate() error {
	if v.Kind < KindString || v.Kind > KindBytes {
		return fmt.Errorf("%w: %d", ErrUnsupportedValueKind, v.Kind)
	}
	return nil
}

// Property is a single key/value pair of [Properties] in insertion order.
type Property struct {
	Key   string `json:"key" cbor:"1,keyasint"`
	Value Value  `json:"value" cbor:"2,keyasint"`
}

// Properties is an insertion-ordered map of scalar values. The zero value is
// ready to use.
type Properties struct {
	keys   []string
	values map[string]Value
}

// Set stores v under key. A new key is appended to the end of the order; an
// existing key keeps its position.
func (p *Properties) Set(key string, v Value) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

func (p *Properties) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Properties) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
}

func (p *Properties) Len() int {
	return len(p.keys)
}

// Keys returns a copy of the keys in insertion order.
func (p *Properties) Keys() []string {
	return slices.Clone(p.keys)
}

// Entries returns the properties as an ordered slice.
func (p *Properties) Entries() []Property {
	out := make([]Property, 0, len(p.keys))
	for _, k := range p.keys {
		out = append(out, Property{Key: k, Value: p.values[k]})
	}
	return out
}

// PropertiesFrom builds [Properties] from ordered entries. A repeated key
// overwrites the earlier value in place.
func PropertiesFrom(entries []Property) Properties {
	var p Properties
	for _, e := range entries {
		p.Set(e.Key, e.Value)
	}
	return p
}
