// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"bytes"
	"io"

	"github.com/creachadair/jparse/ast"
)

// Options control the behavior of a Parser. A nil *Options is ready for use
// and provides default values as described.
type Options struct {
	// If not nil, Filter is called during Parse to decide which parts of the
	// input are kept in the result. See Callback.
	Filter Callback

	// If true, Parse does not report errors. Instead, a parse that fails
	// yields a discarded value, and the Failed method reports true.
	SuppressErrors bool

	// If true, line (//) and block (/* */) comments are permitted wherever
	// whitespace is, and are ignored.
	AllowComments bool

	// If true, a comma is permitted after the last element of an array or
	// the last member of an object.
	AllowTrailingCommas bool

	// If positive, the maximum nesting depth of objects and arrays. Deeper
	// input is rejected as a syntax error. If zero, nesting is unbounded, and
	// the parser uses stack space proportional to the depth of the input.
	MaxDepth int
}

// A Parser is a recursive-descent parser for JSON text. A Parser has three
// modes, which accept exactly the same inputs:
//
//   - Parse constructs an *ast.Value from the input.
//   - Accept reports only whether the input is valid.
//   - Push delivers the structure of the input to a Receiver.
//
// Each Parser owns its input, and should be used for a single parse.
type Parser struct {
	cur  *Cursor
	opts Options

	depth    int  // current nesting level
	errored  bool // a parse error occurred
	expected Kind // what was expected when the error occurred
}

// NewParser constructs a Parser that consumes input from r.
func NewParser(r io.Reader, opts *Options) *Parser {
	s := NewScanner(r)
	p := &Parser{cur: NewCursor(s)}
	if opts != nil {
		p.opts = *opts
	}
	s.AllowComments(p.opts.AllowComments)
	return p
}

// Failed reports whether the parse failed. Once it is set, it remains set.
func (p *Parser) Failed() bool { return p.errored }

// Expected reports the token kind the parser expected at the point of
// failure, or Uninitialized if there was no particular expectation (for
// example, a lexical error or a number overflow).
func (p *Parser) Expected() Kind { return p.expected }

// enter records that the parser has entered a container, and reports whether
// the nesting depth is still within bounds.
func (p *Parser) enter() bool {
	p.depth++
	return p.opts.MaxDepth <= 0 || p.depth <= p.opts.MaxDepth
}

// trailingClose reports whether the token following a comma closes the
// current container, and trailing commas are allowed.
func (p *Parser) trailingClose(close Kind) bool {
	return p.opts.AllowTrailingCommas && p.cur.Kind() == close
}

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *SyntaxError:
			*errp = err
		case *NumberError:
			*errp = err
		default:
			panic(perr)
		}
	}
}

// Parse parses a single JSON value from r, which must contain nothing else
// but whitespace.
func Parse(r io.Reader, opts *Options) (*ast.Value, error) {
	return NewParser(r, opts).Parse(true)
}

// MustParse parses a single JSON value from r as Parse does, but panics if
// the input is not valid.
func MustParse(r io.Reader, opts *Options) *ast.Value {
	v, err := Parse(r, opts)
	if err != nil {
		panic(err)
	}
	return v
}

// Accept reports whether r contains a single valid JSON value.
func Accept(r io.Reader, opts *Options) bool {
	return NewParser(r, opts).Accept(true)
}

// Push parses a single JSON value from r and delivers its structure to h.
// It reports whether the parse succeeded.
func Push(r io.Reader, h Receiver, opts *Options) bool {
	return NewParser(r, opts).Push(h, true)
}

// Valid reports whether data is a single valid JSON value.
func Valid(data []byte) bool { return Accept(bytes.NewReader(data), nil) }
