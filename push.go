// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import "math"

// UnknownSize is the size hint passed to BeginObject and BeginArray when the
// number of elements is not known in advance, as is always the case for JSON
// text.
const UnknownSize = math.MaxInt

// A Receiver receives events from Push corresponding to the structure of the
// input.  Each method reports whether parsing should continue: if a method
// returns false, Push stops immediately and reads no further input.
//
// Push ensures that each BeginObject is paired with an EndObject and each
// BeginArray with an EndArray, unless the parse stops early. Every member of
// an object is reported as a call to Key followed by the events for its value.
type Receiver interface {
	// A null value was read.
	Null() bool

	// A Boolean value was read.
	Bool(bool) bool

	// A negative integer was read.
	Int(int64) bool

	// A non-negative integer was read.
	Uint(uint64) bool

	// A floating-point number was read. The raw text of the number as it
	// appears in the input is also provided.
	Float(value float64, raw string) bool

	// A string value was read. The string is unescaped.
	String(string) bool

	// The beginning of an object was read. Binary formats may report the
	// number of members; text reports UnknownSize.
	BeginObject(size int) bool

	// An object key was read. The key is unescaped.
	Key(string) bool

	// The end of an object was read.
	EndObject() bool

	// The beginning of an array was read. Binary formats may report the
	// number of elements; text reports UnknownSize.
	BeginArray(size int) bool

	// The end of an array was read.
	EndArray() bool

	// A binary value was read. This is never called for JSON text.
	Binary([]byte) bool

	// A parse error occurred at the given byte offset. The text of the
	// offending token is given, along with an error describing the problem,
	// of concrete type *SyntaxError or *NumberError.
	//
	// After ParseError is called the parse has failed, and no further events
	// are delivered regardless of the value it returns.
	ParseError(offset int, text string, err error) bool
}

// Push parses a JSON value from the input and delivers its structure to h.
// If strict is true, the input must contain nothing else after the value.
//
// Push reports true if the input was valid and every method of h returned
// true. If the input is invalid, Push calls the ParseError method of h
// exactly once and returns false. If a method of h other than ParseError
// returns false, Push returns false at once without calling ParseError, and
// the Failed method reports false.
func (p *Parser) Push(h Receiver, strict bool) bool {
	p.cur.Advance()
	if !p.pushValue(h) {
		return false
	}
	if strict && p.cur.Advance() != EndOfInput {
		return p.reject(h, syntaxError(p.cur, EndOfInput, ""))
	}
	return true
}

// pushValue delivers the value beginning at the current token to h.
func (p *Parser) pushValue(h Receiver) bool {
	switch p.cur.Kind() {
	case BeginObject:
		return p.pushObject(h)
	case BeginArray:
		return p.pushArray(h)
	case FloatValue:
		f := p.cur.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return p.reject(h, numberError(p.cur))
		}
		return h.Float(f, p.cur.Text())
	case LiteralFalse:
		return h.Bool(false)
	case LiteralTrue:
		return h.Bool(true)
	case LiteralNull:
		return h.Null()
	case IntegerValue:
		return h.Int(p.cur.Int())
	case UnsignedValue:
		return h.Uint(p.cur.Uint())
	case StringValue:
		return h.String(p.cur.TakeString())
	case ParseError:
		return p.reject(h, syntaxError(p.cur, Uninitialized, ""))
	default:
		return p.reject(h, syntaxError(p.cur, ValueStart, ""))
	}
}

func (p *Parser) pushObject(h Receiver) bool {
	if !p.enter() {
		return p.reject(h, syntaxError(p.cur, Uninitialized, depthMessage(p.opts.MaxDepth)))
	}
	defer func() { p.depth-- }()
	if !h.BeginObject(UnknownSize) {
		return false
	}

	if p.cur.Advance() == EndObject {
		return h.EndObject()
	}
	for {
		if p.cur.Kind() != StringValue {
			return p.reject(h, syntaxError(p.cur, StringValue, ""))
		}
		if !h.Key(p.cur.TakeString()) {
			return false
		}

		if p.cur.Advance() != NameSeparator {
			return p.reject(h, syntaxError(p.cur, NameSeparator, ""))
		}
		p.cur.Advance()
		if !p.pushValue(h) {
			return false
		}

		if p.cur.Advance() == ValueSeparator {
			if p.cur.Advance(); p.trailingClose(EndObject) {
				return h.EndObject()
			}
			continue
		}
		if p.cur.Kind() != EndObject {
			return p.reject(h, syntaxError(p.cur, EndObject, ""))
		}
		return h.EndObject()
	}
}

func (p *Parser) pushArray(h Receiver) bool {
	if !p.enter() {
		return p.reject(h, syntaxError(p.cur, Uninitialized, depthMessage(p.opts.MaxDepth)))
	}
	defer func() { p.depth-- }()
	if !h.BeginArray(UnknownSize) {
		return false
	}

	if p.cur.Advance() == EndArray {
		return h.EndArray()
	}
	for {
		if !p.pushValue(h) {
			return false
		}

		if p.cur.Advance() == ValueSeparator {
			if p.cur.Advance(); p.trailingClose(EndArray) {
				return h.EndArray()
			}
			continue
		}
		if p.cur.Kind() != EndArray {
			return p.reject(h, syntaxError(p.cur, EndArray, ""))
		}
		return h.EndArray()
	}
}

// reject reports err to h and marks the parse as failed. It always returns
// false, since no further events may follow a parse error.
func (p *Parser) reject(h Receiver, err error) bool {
	p.errored = true
	if se, ok := err.(*SyntaxError); ok {
		p.expected = se.Expected
	}
	h.ParseError(p.cur.Offset(), p.cur.Text(), err)
	return false
}
