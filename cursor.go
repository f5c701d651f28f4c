// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"errors"
	"io"
	"strconv"

	"github.com/creachadair/jparse/internal/escape"
	"go4.org/mem"
)

// A Cursor is a single-token lookahead over a Scanner. Call Advance to make
// the next token current. Comment tokens are skipped.
//
// Number tokens are converted when they become current. An integer literal
// that does not fit its 64-bit type is reported as a FloatValue, whose value
// may be infinite.
type Cursor struct {
	s    *Scanner
	kind Kind
	err  error // lexical error, when kind == ParseError

	taken bool // the string payload has been moved out
	i     int64
	u     uint64
	f     float64
}

// NewCursor constructs a cursor that reads tokens from s.  No token is
// current until the first call to Advance.
func NewCursor(s *Scanner) *Cursor { return &Cursor{s: s} }

// Advance reads the next token from the scanner, makes it current, and
// returns its kind. A lexical error is reported as a ParseError token; the
// cursor does not otherwise interpret it.
func (c *Cursor) Advance() Kind {
	c.taken = false
	c.err = nil
	for {
		err := c.s.Next()
		c.kind = c.s.Kind()
		if err == io.EOF {
			c.kind = EndOfInput
			return c.kind
		} else if err != nil {
			c.kind = ParseError
			c.err = err
			return c.kind
		}
		if c.kind != LineComment && c.kind != BlockComment {
			break
		}
	}

	switch c.kind {
	case UnsignedValue:
		u, err := strconv.ParseUint(string(c.s.Text()), 10, 64)
		if err != nil {
			c.toFloat()
		} else {
			c.u = u
		}
	case IntegerValue:
		i, err := strconv.ParseInt(string(c.s.Text()), 10, 64)
		if err != nil {
			c.toFloat()
		} else {
			c.i = i
		}
	case FloatValue:
		c.toFloat()
	}
	return c.kind
}

// toFloat converts the current number token to a float. Values out of range
// become infinite.
func (c *Cursor) toFloat() {
	c.kind = FloatValue
	// The scanner has already checked the syntax, so the only possible error
	// is a range error, in which case f is +Inf, -Inf, or 0.
	c.f, _ = strconv.ParseFloat(string(c.s.Text()), 64)
}

// Kind returns the kind of the current token.
func (c *Cursor) Kind() Kind { return c.kind }

// TakeString moves the decoded value of the current string token out of the
// cursor. It returns "" if the current token is not a string, or if the value
// was already taken.
func (c *Cursor) TakeString() string {
	if c.kind != StringValue || c.taken {
		return ""
	}
	c.taken = true
	text := c.s.Text()
	dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
	if err != nil {
		return "" // not possible for a token accepted by the scanner
	}
	return string(dec)
}

// Int returns the value of the current IntegerValue token.
func (c *Cursor) Int() int64 { return c.i }

// Uint returns the value of the current UnsignedValue token.
func (c *Cursor) Uint() uint64 { return c.u }

// Float returns the value of the current FloatValue token.
func (c *Cursor) Float() float64 { return c.f }

// Text returns a copy of the raw source text of the current token. For a
// ParseError, it is the text read before the error was found.
func (c *Cursor) Text() string { return string(c.s.Text()) }

// Offset returns the byte offset of the start of the current token.
func (c *Cursor) Offset() int { return c.s.Span().Pos }

// Location returns the location of the current token.
func (c *Cursor) Location() Location { return c.s.Location() }

// Err returns the lexical error for a ParseError token, or nil.
func (c *Cursor) Err() error { return c.err }

// errMessage returns the text of the lexical error without its offset.
func (c *Cursor) errMessage() string {
	if c.err == nil {
		return ""
	}
	var pe posError
	if errors.As(c.err, &pe) {
		return pe.err.Error()
	}
	return c.err.Error()
}
