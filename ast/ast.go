// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a mutable representation of JSON values.
//
// A Value is a tagged union over the JSON types. The zero Value is
// "discarded", a state that marks a value that was parsed but not retained.
// The setter methods change the type and content of a Value in place, which
// allows a parser to fill in a value without allocating a new node for each
// production.
//
// Object members are kept in key order. Insert does not replace the value of
// a key that is already present: when an object has duplicate keys, the first
// occurrence wins.
package ast

import (
	"iter"
	"slices"

	"github.com/creachadair/mds/omap"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Discarded Kind = iota // parsed but not retained
	Null                  // null
	Bool                  // true or false
	Int                   // signed integer
	Uint                  // unsigned integer
	Float                 // floating-point number
	String                // string
	Array                 // ordered sequence of values
	Object                // key-ordered mapping from strings to values
)

var kindStr = [...]string{
	Discarded: "discarded",
	Null:      "null",
	Bool:      "boolean",
	Int:       "integer",
	Uint:      "unsigned",
	Float:     "float",
	String:    "string",
	Array:     "array",
	Object:    "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The zero value is discarded.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	arr  []*Value
	obj  omap.Map[string, *Value]
}

// NewString returns a new string value.
func NewString(s string) *Value { return &Value{kind: String, s: s} }

// NewInt returns a new signed integer value.
func NewInt(z int64) *Value { return &Value{kind: Int, i: z} }

// NewUint returns a new unsigned integer value.
func NewUint(z uint64) *Value { return &Value{kind: Uint, u: z} }

// NewFloat returns a new floating-point value.
func NewFloat(f float64) *Value { return &Value{kind: Float, f: f} }

// NewBool returns a new Boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, b: b} }

// NewNull returns a new null value.
func NewNull() *Value { return &Value{kind: Null} }

// Kind reports the type of v.
func (v *Value) Kind() Kind { return v.kind }

// IsDiscarded reports whether v is discarded.
func (v *Value) IsDiscarded() bool { return v.kind == Discarded }

// IsNull reports whether v is null.
func (v *Value) IsNull() bool { return v.kind == Null }

// Reset returns v to the discarded state, releasing its contents.
func (v *Value) Reset() { *v = Value{} }

// SetNull makes v null.
func (v *Value) SetNull() { *v = Value{kind: Null} }

// SetBool makes v the Boolean b.
func (v *Value) SetBool(b bool) { *v = Value{kind: Bool, b: b} }

// SetInt makes v the signed integer z.
func (v *Value) SetInt(z int64) { *v = Value{kind: Int, i: z} }

// SetUint makes v the unsigned integer z.
func (v *Value) SetUint(z uint64) { *v = Value{kind: Uint, u: z} }

// SetFloat makes v the number f.
func (v *Value) SetFloat(f float64) { *v = Value{kind: Float, f: f} }

// SetString makes v the string s.
func (v *Value) SetString(s string) { *v = Value{kind: String, s: s} }

// SetArray makes v an empty array.
func (v *Value) SetArray() { *v = Value{kind: Array} }

// SetObject makes v an empty object.
func (v *Value) SetObject() { *v = Value{kind: Object, obj: omap.New[string, *Value]()} }

// Append adds elt to the end of v, which must be an array.
func (v *Value) Append(elt *Value) {
	v.mustBe(Array)
	v.arr = append(v.arr, elt)
}

// Insert adds a member with the given key and value to v, which must be an
// object. If v already has a member with that key, Insert does nothing and
// returns false; otherwise it returns true.
func (v *Value) Insert(key string, elt *Value) bool {
	v.mustBe(Object)
	if _, ok := v.obj.GetOK(key); ok {
		return false
	}
	v.obj.Set(key, elt)
	return true
}

func (v *Value) mustBe(k Kind) {
	if v.kind != k {
		panic("ast: value is " + v.kind.String() + ", not " + k.String())
	}
}

// Bool returns the value of a Boolean, or false.
func (v *Value) Bool() bool { return v.b }

// Int returns the value of an integer as an int64. An unsigned value is
// converted, a float is truncated.
func (v *Value) Int() int64 {
	switch v.kind {
	case Uint:
		return int64(v.u)
	case Float:
		return int64(v.f)
	}
	return v.i
}

// Uint returns the value of an unsigned integer, or 0.
func (v *Value) Uint() uint64 { return v.u }

// Float returns the value of a number as a float64.
func (v *Value) Float() float64 {
	switch v.kind {
	case Int:
		return float64(v.i)
	case Uint:
		return float64(v.u)
	}
	return v.f
}

// Str returns the content of a string, or "".
func (v *Value) Str() string { return v.s }

// Len returns the number of elements of an array or members of an object.
// It returns 0 for other values.
func (v *Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return v.obj.Len()
	}
	return 0
}

// Index returns the element of an array at offset i, or nil if v is not an
// array or i is out of range.
func (v *Value) Index(i int) *Value {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Values returns the elements of an array, or nil.
func (v *Value) Values() []*Value { return slices.Clip(v.arr) }

// Get returns the value of the member of an object with the given key, or
// nil if v is not an object or has no such member.
func (v *Value) Get(key string) *Value {
	if v.kind != Object {
		return nil
	}
	return v.obj.Get(key)
}

// Keys returns the keys of an object in order, or nil.
func (v *Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return v.obj.Keys()
}

// Members is a range function over the members of an object, in key order.
// It yields nothing for other values.
func (v *Value) Members() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v.kind != Object {
			return
		}
		for it := v.obj.First(); it.IsValid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}
