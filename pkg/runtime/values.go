package runtime

import (
	"fmt"
	"io"

	"abrvalg/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindList
	KindMap
	KindRange
	KindFunction
	KindBuiltin
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindRange:
		return "range"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// NumberValue carries the language's single numeric type: integer and
// real arithmetic share it, with IsInt tracking which side a value is
// on. Dividing two evenly divisible integers stays integral; any other
// mixing promotes to the real side.
type NumberValue struct {
	IsInt bool
	Int   int64
	Float float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

// AsFloat widens the number to its real value regardless of side.
func (v NumberValue) AsFloat() float64 {
	if v.IsInt {
		return float64(v.Int)
	}
	return v.Float
}

func (v NumberValue) IsZero() bool {
	if v.IsInt {
		return v.Int == 0
	}
	return v.Float == 0
}

func IntNumber(v int64) NumberValue {
	return NumberValue{IsInt: true, Int: v}
}

func FloatNumber(v float64) NumberValue {
	return NumberValue{Float: v}
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

//-----------------------------------------------------------------------------
// Collections and ranges
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

func NewList(elements []Value) *ListValue {
	return &ListValue{Elements: elements}
}

// RangeValue holds integer bounds; members are produced on demand
// rather than materialized. Ranges only count upward: an end at or
// below the start (below, when inclusive) is empty.
type RangeValue struct {
	Start     int64
	End       int64
	Inclusive bool
}

func (v RangeValue) Kind() Kind { return KindRange }

// Count reports how many members the range produces.
func (v RangeValue) Count() int64 {
	end := v.End
	if v.Inclusive {
		end++
	}
	if end <= v.Start {
		return 0
	}
	return end - v.Start
}

//-----------------------------------------------------------------------------
// Maps
//-----------------------------------------------------------------------------

// mapKey is the comparable form of a hashable value.
type mapKey struct {
	kind Kind
	str  string
	num  int64
}

// Hashable reports whether a value can key a map: strings and integer
// numbers only.
func Hashable(v Value) bool {
	switch val := v.(type) {
	case StringValue:
		return true
	case NumberValue:
		return val.IsInt
	default:
		return false
	}
}

func hashOf(v Value) mapKey {
	switch val := v.(type) {
	case StringValue:
		return mapKey{kind: KindString, str: val.Val}
	case NumberValue:
		return mapKey{kind: KindNumber, num: val.Int}
	}
	return mapKey{kind: KindNone}
}

// MapValue keeps entries in insertion order: Keys lists the original
// key values oldest-first, and re-assigning an existing key keeps its
// position.
type MapValue struct {
	keys  []Value
	items map[mapKey]Value
}

func (v *MapValue) Kind() Kind { return KindMap }

func NewMap() *MapValue {
	return &MapValue{items: make(map[mapKey]Value)}
}

func (v *MapValue) Len() int {
	return len(v.keys)
}

// Keys returns the key values in insertion order.
func (v *MapValue) Keys() []Value {
	return v.keys
}

// Get looks up a map entry; the key must be Hashable.
func (v *MapValue) Get(key Value) (Value, bool) {
	item, ok := v.items[hashOf(key)]
	return item, ok
}

// Set inserts or overwrites an entry; the key must be Hashable.
func (v *MapValue) Set(key, value Value) {
	h := hashOf(key)
	if _, exists := v.items[h]; !exists {
		v.keys = append(v.keys, key)
	}
	v.items[h] = value
}

//-----------------------------------------------------------------------------
// Functions and builtins
//-----------------------------------------------------------------------------

// FunctionValue pairs a function body with the environment that was
// current at its definition. The closure reference is what keeps a
// defining scope alive after its call frame has returned.
type FunctionValue struct {
	Name    string
	Params  []string
	Body    *ast.Block
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeCallContext provides host hooks for builtin implementations.
type NativeCallContext struct {
	Out io.Writer
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type BuiltinValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v BuiltinValue) Kind() Kind { return KindBuiltin }
