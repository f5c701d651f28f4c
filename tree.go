// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"math"

	"github.com/creachadair/jparse/ast"
)

// Event identifies the point in a parse at which a Callback is called.
type Event byte

// Constants defining the valid Event values.
const (
	EventObjectStart Event = iota // read "{", before the members
	EventObjectEnd                // read "}", after the members
	EventArrayStart               // read "[", before the elements
	EventArrayEnd                 // read "]", after the elements
	EventKey                      // read the key of an object member
	EventValue                    // finished reading a value
)

var eventStr = [...]string{
	EventObjectStart: "object_start",
	EventObjectEnd:   "object_end",
	EventArrayStart:  "array_start",
	EventArrayEnd:    "array_end",
	EventKey:         "key",
	EventValue:       "value",
}

func (e Event) String() string {
	if int(e) >= len(eventStr) {
		return "invalid"
	}
	return eventStr[e]
}

// A Callback filters the value constructed by Parse. It is called with the
// current nesting depth, the event that triggered it, and the value in
// question, and reports whether that value should be kept:
//
//	Event            | depth           | v                 | false means
//	---------------- | --------------- | ----------------- | ------------------------------
//	EventObjectStart | of the object   | the object (empty)| discard the object
//	EventObjectEnd   | of the object   | the object        | discard the object
//	EventArrayStart  | of the array    | the array (empty) | discard the array
//	EventArrayEnd    | of the array    | the array         | discard the array
//	EventKey         | of the members  | the key, a string | discard this member
//	EventValue       | of the value    | the value         | discard the value
//
// A discarded value is still parsed completely, but no further callbacks are
// made for its contents and it is not stored into its parent. If the
// top-level value is discarded, Parse returns null.
//
// The callback must not retain v after it returns.
type Callback func(depth int, event Event, v *ast.Value) bool

// Parse parses a JSON value from the input and returns it.  If strict is true,
// the input must contain nothing else; otherwise parsing stops at the end of
// the first value and any further input is ignored.
//
// If the input is not valid, Parse returns an error of concrete type
// *SyntaxError, or *NumberError for a number that is not finite. If the
// parser was constructed with SuppressErrors set, Parse instead returns a
// discarded value and a nil error, and the Failed method reports true.
func (p *Parser) Parse(strict bool) (*ast.Value, error) {
	v := new(ast.Value)
	if err := p.ParseInto(strict, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseInto behaves as Parse, but stores the result into v.
func (p *Parser) ParseInto(strict bool, v *ast.Value) (err error) {
	defer func() {
		if err != nil || p.errored {
			v.Reset()
		}
	}()
	defer p.recoverParseError(&err)

	p.cur.Advance()
	p.parseValue(true, v)

	// In strict mode, the input must be completely consumed.
	if strict && !p.errored {
		p.cur.Advance()
		p.expect(EndOfInput)
	}
	if !p.errored && v.IsDiscarded() {
		v.SetNull() // the filter discarded the whole value
	}
	return nil
}

// parseValue parses the value beginning at the current token into v.
// Postcondition: the current token is the last token of the value.
func (p *Parser) parseValue(keep bool, v *ast.Value) {
	v.Reset()
	switch p.cur.Kind() {
	case BeginObject:
		keep = p.parseObject(keep, v)
	case BeginArray:
		keep = p.parseArray(keep, v)
	case LiteralNull:
		v.SetNull()
	case LiteralTrue:
		v.SetBool(true)
	case LiteralFalse:
		v.SetBool(false)
	case StringValue:
		v.SetString(p.cur.TakeString())
	case IntegerValue:
		v.SetInt(p.cur.Int())
	case UnsignedValue:
		v.SetUint(p.cur.Uint())
	case FloatValue:
		f := p.cur.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			p.failNumber()
			return
		}
		v.SetFloat(f)
	case ParseError:
		p.fail(Uninitialized, "")
		return
	default:
		p.fail(ValueStart, "")
		return
	}
	if p.errored {
		return
	}
	if keep && p.opts.Filter != nil && !p.opts.Filter(p.depth, EventValue, v) {
		v.Reset()
	}
}

// parseObject parses an object into v, and reports whether the object was
// kept by the filter at its start.
// Precondition: the current token is BeginObject.
// Postcondition: the current token is EndObject.
func (p *Parser) parseObject(keep bool, v *ast.Value) bool {
	if keep {
		v.SetObject()
		if p.opts.Filter != nil && !p.opts.Filter(p.depth, EventObjectStart, v) {
			keep = false
			v.Reset()
		}
	}
	if !p.enter() {
		p.fail(Uninitialized, depthMessage(p.opts.MaxDepth))
		return keep
	}

	if p.cur.Advance() != EndObject {
		for {
			if !p.expect(StringValue) {
				return keep
			}
			key := p.cur.TakeString()

			keepMember := keep
			if keep && p.opts.Filter != nil {
				keepMember = p.opts.Filter(p.depth, EventKey, ast.NewString(key))
			}

			p.cur.Advance()
			if !p.expect(NameSeparator) {
				return keep
			}

			p.cur.Advance()
			elt := new(ast.Value)
			p.parseValue(keepMember, elt)
			if p.errored {
				return keep
			}
			if keepMember && !elt.IsDiscarded() {
				v.Insert(key, elt) // N.B. the first occurrence of a key wins
			}

			if p.cur.Advance() == ValueSeparator {
				if p.cur.Advance(); p.trailingClose(EndObject) {
					break
				}
				continue
			}
			if !p.expect(EndObject) {
				return keep
			}
			break
		}
	}

	p.depth--
	if keep && p.opts.Filter != nil && !p.opts.Filter(p.depth, EventObjectEnd, v) {
		v.Reset()
	}
	return keep
}

// parseArray parses an array into v, and reports whether the array was kept
// by the filter at its start.
// Precondition: the current token is BeginArray.
// Postcondition: the current token is EndArray.
func (p *Parser) parseArray(keep bool, v *ast.Value) bool {
	if keep {
		v.SetArray()
		if p.opts.Filter != nil && !p.opts.Filter(p.depth, EventArrayStart, v) {
			keep = false
			v.Reset()
		}
	}
	if !p.enter() {
		p.fail(Uninitialized, depthMessage(p.opts.MaxDepth))
		return keep
	}

	if p.cur.Advance() != EndArray {
		for {
			elt := new(ast.Value)
			p.parseValue(keep, elt)
			if p.errored {
				return keep
			}
			if keep && !elt.IsDiscarded() {
				v.Append(elt)
			}

			if p.cur.Advance() == ValueSeparator {
				if p.cur.Advance(); p.trailingClose(EndArray) {
					break
				}
				continue
			}
			if !p.expect(EndArray) {
				return keep
			}
			break
		}
	}

	p.depth--
	if keep && p.opts.Filter != nil && !p.opts.Filter(p.depth, EventArrayEnd, v) {
		v.Reset()
	}
	return keep
}

// expect reports whether the current token has the given kind, and records
// an error if it does not.
func (p *Parser) expect(kind Kind) bool {
	if p.cur.Kind() != kind {
		p.fail(kind, "")
		return false
	}
	return true
}

// fail records a syntax error at the current token. Unless errors are
// suppressed, it panics with the error, to be recovered by the caller of the
// parse.
func (p *Parser) fail(expected Kind, msg string) {
	p.errored = true
	p.expected = expected
	if !p.opts.SuppressErrors {
		panic(syntaxError(p.cur, expected, msg))
	}
}

// failNumber records a number overflow at the current token.
func (p *Parser) failNumber() {
	p.errored = true
	p.expected = Uninitialized
	if !p.opts.SuppressErrors {
		panic(numberError(p.cur))
	}
}
