// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import "math"

// Accept reports whether the input is a valid JSON value. If strict is true,
// the input must contain nothing else after the value.  Accept constructs no
// values, does not call the filter, and reports no errors; after a false
// result, the Failed method reports true.
func (p *Parser) Accept(strict bool) bool {
	p.cur.Advance()
	if !p.acceptValue() {
		p.errored = true
		return false
	}
	if strict && p.cur.Advance() != EndOfInput {
		p.errored = true
		return false
	}
	return true
}

// acceptValue checks the value beginning at the current token. It consumes no
// tokens past the point where the input is found to be invalid.
func (p *Parser) acceptValue() bool {
	switch p.cur.Kind() {
	case BeginObject:
		return p.acceptObject()
	case BeginArray:
		return p.acceptArray()
	case FloatValue:
		f := p.cur.Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	case LiteralTrue, LiteralFalse, LiteralNull, StringValue, IntegerValue, UnsignedValue:
		return true
	default:
		return false
	}
}

func (p *Parser) acceptObject() bool {
	if !p.enter() {
		return false
	}
	defer func() { p.depth-- }()

	if p.cur.Advance() == EndObject {
		return true
	}
	for {
		if p.cur.Kind() != StringValue {
			return false
		}
		if p.cur.Advance() != NameSeparator {
			return false
		}
		p.cur.Advance()
		if !p.acceptValue() {
			return false
		}

		if p.cur.Advance() == ValueSeparator {
			if p.cur.Advance(); p.trailingClose(EndObject) {
				return true
			}
			continue
		}
		return p.cur.Kind() == EndObject
	}
}

func (p *Parser) acceptArray() bool {
	if !p.enter() {
		return false
	}
	defer func() { p.depth-- }()

	if p.cur.Advance() == EndArray {
		return true
	}
	for {
		if !p.acceptValue() {
			return false
		}

		if p.cur.Advance() == ValueSeparator {
			if p.cur.Advance(); p.trailingClose(EndArray) {
				return true
			}
			continue
		}
		return p.cur.Kind() == EndArray
	}
}
