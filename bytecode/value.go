// Package bytecode holds the interpreter's tightly coupled core: the Value
// representation, the closed set of heap Object variants, the Chunk
// bytecode container, the opcode table and disassembler, and the Heap's
// allocator/interner/mark-sweep GC. These types reference one another in a
// cycle (a Function embeds a Chunk, a Chunk indexes Values, a Value can
// hold a Function), so they live inside one package rather than split
// across several that would import each other.
package bytecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType discriminates the four variants of Value. Nilan's values are
// nil, bool, double, or a pointer into the heap — modeled here as a closed
// tagged union rather than an open interface.
type ValueType int

const (
	ValNil ValueType = iota
	ValBool
	ValNumber
	ValObject
)

// Value is a trivially-copyable tagged scalar: a discriminator plus a union
// of the possible payloads, used here as an alternative to NaN-boxing.
// NaN-boxing buys packing density that matters in a hand-rolled allocator;
// it buys nothing in Go, where a boxed interface would cost an allocation
// per number anyway, so the tagged struct is the one that fits the host
// language.
type Value struct {
	typ    ValueType
	b      bool
	n      float64
	object Obj
}

// Nil is the singular nil value.
var Nil = Value{typ: ValNil}

// Bool wraps a boolean as a Value.
func Bool(b bool) Value { return Value{typ: ValBool, b: b} }

// Number wraps a float64 as a Value. Doubles are stored as-is, preserving
// full IEEE-754 semantics (signed zero, NaN).
func Number(n float64) Value { return Value{typ: ValNumber, n: n} }

// FromObject wraps a heap Object as a Value.
func FromObject(o Obj) Value { return Value{typ: ValObject, object: o} }

func (v Value) IsNil() bool    { return v.typ == ValNil }
func (v Value) IsBool() bool   { return v.typ == ValBool }
func (v Value) IsNumber() bool { return v.typ == ValNumber }
func (v Value) IsObject() bool { return v.typ == ValObject }

func (v Value) AsBool() bool     { return v.b }
func (v Value) AsNumber() float64 { return v.n }
func (v Value) AsObject() Obj    { return v.object }

// IsString reports whether v holds a *ObjString.
func (v Value) IsString() bool {
	_, ok := v.object.(*ObjString)
	return v.typ == ValObject && ok
}

// AsString returns the Go string content of a string Value. The caller must
// have checked IsString.
func (v Value) AsString() string {
	return v.object.(*ObjString).Chars
}

// IsFalsey implements Nilan's truthiness: nil and false are falsey,
// everything else (including 0 and the empty string) is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements the Equal opcode's semantics: nil==nil is true;
// values of different types are never equal; doubles use IEEE == (so NaN !=
// NaN, and -0 == 0); strings and other objects compare by identity (pointer
// equality — guaranteed to coincide with content equality for interned
// strings, see Heap.InternString).
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case ValNil:
		return true
	case ValBool:
		return a.b == b.b
	case ValNumber:
		return a.n == b.n
	case ValObject:
		return a.object == b.object
	}
	return false
}

// String renders v the way the Print opcode does: nil, true/false, a double
// with six fractional digits (`%f` semantics), a string's raw bytes, or an
// object's own textual form (<function: NAME>, <script>, <native func>).
// Grounded on original_source/include/to_string.h, which pins this
// formatting precisely.
func (v Value) String() string {
	switch v.typ {
	case ValNil:
		return "nil"
	case ValBool:
		if v.b {
			return "true"
		}
		return "false"
	case ValNumber:
		return formatNumber(v.n)
	case ValObject:
		return v.object.String()
	}
	return ""
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "nan"
	}
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', 6, 64)
}

// TypeName returns a short diagnostic name for v's type.
func (v Value) TypeName() string {
	switch v.typ {
	case ValNil:
		return "nil"
	case ValBool:
		return "bool"
	case ValNumber:
		return "number"
	case ValObject:
		return fmt.Sprintf("%T", v.object)
	}
	return "unknown"
}

// joinValues is a small debug helper that renders a constant pool slice as
// a comma-separated list.
func joinValues(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
