// Package value defines the in-memory tree produced by the confsh parser:
// integers, fractional numbers from division, and ordered tables.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the interface for every node of a parsed configuration tree.
type Value interface {
	value()
	String() string
}

// Int is an integer scalar.
type Int int64

// Float is a fractional scalar. Only division yields one; integral results
// are collapsed to Int before they reach the tree.
type Float float64

func (Int) value()   {}
func (Float) value() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String renders f in shortest round-trip form, switching to exponent
// notation outside [1e-4, 1e16).
func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	if exp, err := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Normalize collapses an integral Float that fits in an Int. Other values
// are returned unchanged.
func Normalize(v Value) Value {
	f, ok := v.(Float)
	if !ok {
		return v
	}
	x := float64(f)
	if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
		return Int(int64(x))
	}
	return v
}

// Table is a keyed collection that preserves insertion order.
type Table struct {
	keys  []string
	items map[string]Value
}

func (*Table) value() {}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{items: make(map[string]Value)}
}

// Set binds key to v. Rebinding an existing key replaces its value and
// keeps the key at its original position.
func (t *Table) Set(key string, v Value) {
	if t.items == nil {
		t.items = make(map[string]Value)
	}
	if _, ok := t.items[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
}

// Get returns the value bound to key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.keys) }

// Each calls fn for every entry in insertion order.
func (t *Table) Each(fn func(key string, v Value)) {
	for _, k := range t.keys {
		fn(k, t.items[k])
	}
}

// Clone returns a deep copy of t. Nested tables are copied too so the
// result shares nothing with t.
func (t *Table) Clone() *Table {
	out := &Table{keys: make([]string, len(t.keys)), items: make(map[string]Value, len(t.items))}
	copy(out.keys, t.keys)
	for k, v := range t.items {
		if sub, ok := v.(*Table); ok {
			v = sub.Clone()
		}
		out.items[k] = v
	}
	return out
}

// String renders the table inline, e.g. {A: 1, B: {C: 2}}.
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", k, t.items[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// TypeName returns a short name for v's kind, used in error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Int:
		return "integer"
	case Float:
		return "float"
	case *Table:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
