// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax classifies structural and lexical errors. A *SyntaxError
	// satisfies errors.Is(err, ErrSyntax).
	ErrSyntax = errors.New("syntax error")

	// ErrNumberOverflow classifies number literals whose value is not finite.
	// A *NumberError satisfies errors.Is(err, ErrNumberOverflow).
	ErrNumberOverflow = errors.New("number overflow")
)

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Offset   int     // byte offset of the offending token
	Location LineCol // line and column of the offending token
	Text     string  // text of the offending token (as far as it was read)
	Got      Kind    // kind of the offending token
	Expected Kind    // the expected kind, or Uninitialized if unknown
	Message  string  // description of the problem

	err error // lexical error, if any
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Offset, s.Message)
}

// Unwrap supports error wrapping. It reports the lexical error underlying s,
// if there is one.
func (s *SyntaxError) Unwrap() error { return s.err }

// Is reports whether target is ErrSyntax.
func (s *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// NumberError is the concrete type of errors reported for number literals
// whose value is infinite or not a number, for example 1e400.
type NumberError struct {
	Offset   int
	Location LineCol
	Text     string // the literal as written
}

// Error satisfies the error interface.
func (n *NumberError) Error() string {
	return fmt.Sprintf("at %s (offset %d): number overflow parsing %q", n.Location, n.Offset, n.Text)
}

// Is reports whether target is ErrNumberOverflow.
func (n *NumberError) Is(target error) bool { return target == ErrNumberOverflow }

// syntaxError constructs an error describing the current token of c, which
// was not of the expected kind. If msg is not empty, it replaces the default
// description of the problem.
func syntaxError(c *Cursor, expected Kind, msg string) *SyntaxError {
	got := c.Kind()
	if msg == "" {
		msg = describe(c, expected)
	}
	return &SyntaxError{
		Offset:   c.Offset(),
		Location: c.Location().First,
		Text:     c.Text(),
		Got:      got,
		Expected: expected,
		Message:  msg,
		err:      c.Err(),
	}
}

func numberError(c *Cursor) *NumberError {
	return &NumberError{
		Offset:   c.Offset(),
		Location: c.Location().First,
		Text:     c.Text(),
	}
}

// describe makes a human-readable summary of an unexpected token.  A lexical
// error reports the scanner's message in place of the token.
func describe(c *Cursor, expected Kind) string {
	var sb strings.Builder
	sb.WriteString("syntax error: ")
	if c.Kind() == ParseError {
		fmt.Fprintf(&sb, "%s; last read: %q", c.errMessage(), c.Text())
	} else {
		fmt.Fprintf(&sb, "unexpected %v", c.Kind())
	}
	if expected != Uninitialized {
		fmt.Fprintf(&sb, "; expected %v", expected)
	}
	return sb.String()
}

func depthMessage(max int) string {
	return fmt.Sprintf("syntax error: nesting depth exceeds %d", max)
}
