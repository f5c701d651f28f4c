// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/ast"
	"github.com/goccy/go-yaml"
)

// writeValue writes v to w in the given format, followed by a newline.
func writeValue(w io.Writer, v *ast.Value, format string) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(yamlValue(v))
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := fmt.Fprintln(w, v.JSON())
		return err
	}
}

// yamlValue converts v into a form the YAML encoder renders faithfully.
// Objects become ordered map slices so that the member order is preserved.
func yamlValue(v *ast.Value) any {
	switch v.Kind() {
	case ast.Bool:
		return v.Bool()
	case ast.Int:
		return v.Int()
	case ast.Uint:
		return v.Uint()
	case ast.Float:
		return v.Float()
	case ast.String:
		return v.Str()
	case ast.Array:
		out := make([]any, 0, v.Len())
		for _, elt := range v.Values() {
			if !elt.IsDiscarded() {
				out = append(out, yamlValue(elt))
			}
		}
		return out
	case ast.Object:
		out := make(yaml.MapSlice, 0, v.Len())
		for key, elt := range v.Members() {
			if !elt.IsDiscarded() {
				out = append(out, yaml.MapItem{Key: key, Value: yamlValue(elt)})
			}
		}
		return out
	}
	return nil
}

// eventPrinter is a jparse.Receiver that writes one line per event.
type eventPrinter struct {
	w    io.Writer
	err  error // the parse error, if any
	werr error // the first write error, if any
}

func (e *eventPrinter) pr(format string, args ...any) bool {
	if e.werr == nil {
		_, e.werr = fmt.Fprintf(e.w, format+"\n", args...)
	}
	return e.werr == nil
}

func (e *eventPrinter) Null() bool              { return e.pr("null") }
func (e *eventPrinter) Bool(b bool) bool        { return e.pr("bool %v", b) }
func (e *eventPrinter) Int(z int64) bool        { return e.pr("int %d", z) }
func (e *eventPrinter) Uint(z uint64) bool      { return e.pr("uint %d", z) }
func (e *eventPrinter) String(s string) bool    { return e.pr("string %s", jparse.Quote(s)) }
func (e *eventPrinter) Key(s string) bool       { return e.pr("key %s", jparse.Quote(s)) }
func (e *eventPrinter) BeginObject(int) bool    { return e.pr("begin_object") }
func (e *eventPrinter) EndObject() bool         { return e.pr("end_object") }
func (e *eventPrinter) BeginArray(int) bool     { return e.pr("begin_array") }
func (e *eventPrinter) EndArray() bool          { return e.pr("end_array") }
func (e *eventPrinter) Binary(data []byte) bool { return e.pr("binary %x", data) }

func (e *eventPrinter) Float(_ float64, raw string) bool { return e.pr("float %s", raw) }

func (e *eventPrinter) ParseError(offset int, text string, err error) bool {
	e.err = err
	return e.pr("error offset=%d text=%q", offset, text)
}
