// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jparse/internal/escape"
	"go4.org/mem"
)

// JSON renders v as compact JSON text. A discarded value renders as "", and a
// number that is not finite renders as null.
func (v *Value) JSON() string { return string(v.AppendJSON(nil)) }

// String satisfies fmt.Stringer. It returns the same text as JSON.
func (v *Value) String() string { return v.JSON() }

// AppendJSON appends the compact JSON encoding of v to buf, and returns the
// extended slice.
func (v *Value) AppendJSON(buf []byte) []byte {
	switch v.kind {
	case Discarded:
		return buf
	case Null:
		return append(buf, "null"...)
	case Bool:
		return strconv.AppendBool(buf, v.b)
	case Int:
		return strconv.AppendInt(buf, v.i, 10)
	case Uint:
		return strconv.AppendUint(buf, v.u, 10)
	case Float:
		return appendFloat(buf, v.f)
	case String:
		return escape.AppendQuote(buf, mem.S(v.s))
	case Array:
		buf = append(buf, '[')
		first := true
		for _, elt := range v.arr {
			if elt.IsDiscarded() {
				continue
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = elt.AppendJSON(buf)
		}
		return append(buf, ']')
	case Object:
		buf = append(buf, '{')
		first := true
		for key, elt := range v.Members() {
			if elt.IsDiscarded() {
				continue
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = escape.AppendQuote(buf, mem.S(key))
			buf = append(buf, ':')
			buf = elt.AppendJSON(buf)
		}
		return append(buf, '}')
	default:
		panic("ast: invalid kind " + v.kind.String())
	}
}

// appendFloat formats f so that it reads back as a float: a value with no
// fraction or exponent gets a trailing ".0".
func appendFloat(buf []byte, f float64) []byte {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(buf, "null"...)
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
	if !strings.ContainsAny(string(buf[start:]), ".e") {
		buf = append(buf, ".0"...)
	}
	return buf
}
