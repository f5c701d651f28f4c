// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jparse implements a recursive-descent parser for JSON.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jparse.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Kind())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
// A Cursor wraps a Scanner with one token of lookahead and decodes the values
// of string and number tokens. The parser reads its input through a Cursor.
//
// # Parsing
//
// A Parser consumes a single JSON value in one of three modes. All three
// modes accept exactly the same inputs:
//
//	Mode   | Method | Result
//	------ | ------ | -----------------------------------------------
//	tree   | Parse  | an *ast.Value, or an error
//	accept | Accept | true if the input is valid, otherwise false
//	push   | Push   | calls to the methods of a Receiver
//
// For example:
//
//	v, err := jparse.NewParser(input, nil).Parse(true)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The strict argument of each method controls whether the input may contain
// anything after the first value. If strict is false, parsing stops after the
// first complete value and the rest of the input is not examined.
//
// # Filtering
//
// A Callback set in the Options filters the tree constructed by Parse. It is
// called when an object or array begins and ends, for each object key, and for
// each complete value, and can discard any part of the tree. Discarded input
// is still parsed completely.
//
// # Errors
//
// Parse reports invalid input with an error of concrete type *SyntaxError,
// or *NumberError for a number literal whose value is not finite, such as
// 1e400.  With Options.SuppressErrors, Parse instead returns a discarded
// value and the parser's Failed method reports true. Accept reports only
// false. Push calls the ParseError method of its Receiver.
//
// When an object contains the same key more than once, the tree keeps the
// value of the first occurrence and ignores the rest.
//
// # Resources
//
// The parser recurses once for each level of nesting in the input, so deeply
// nested input uses stack space proportional to its depth. Set MaxDepth in the
// Options to bound the depth when parsing untrusted input.
package jparse
