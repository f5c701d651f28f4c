// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// Recorder is a jparse.Receiver that records each event it receives as a line
// of text. It returns true from every method, except that if Stop is set to
// a positive value n, the nth event returns false.
type Recorder struct {
	Stop int

	buf    bytes.Buffer
	n      int
	Errors []error // errors reported to ParseError
}

func (r *Recorder) pr(msg string, args ...any) bool {
	fmt.Fprintf(&r.buf, msg+"\n", args...)
	r.n++
	return r.Stop <= 0 || r.n != r.Stop
}

// Output returns the recorded events, one per line.
func (r *Recorder) Output() string { return strings.TrimSpace(r.buf.String()) }

// Reset discards the recorded events.
func (r *Recorder) Reset() { r.buf.Reset(); r.n = 0; r.Errors = nil }

func (r *Recorder) Null() bool              { return r.pr("Null") }
func (r *Recorder) Bool(b bool) bool        { return r.pr("Bool %v", b) }
func (r *Recorder) Int(z int64) bool        { return r.pr("Int %d", z) }
func (r *Recorder) Uint(z uint64) bool      { return r.pr("Uint %d", z) }
func (r *Recorder) String(s string) bool    { return r.pr("String %q", s) }
func (r *Recorder) Key(s string) bool       { return r.pr("Key %q", s) }
func (r *Recorder) EndObject() bool         { return r.pr("EndObject") }
func (r *Recorder) EndArray() bool          { return r.pr("EndArray") }
func (r *Recorder) Binary(data []byte) bool { return r.pr("Binary %x", data) }

func (r *Recorder) Float(f float64, raw string) bool { return r.pr("Float %v <%s>", f, raw) }

func (r *Recorder) BeginObject(size int) bool { return r.pr("BeginObject%s", sizeLabel(size)) }
func (r *Recorder) BeginArray(size int) bool  { return r.pr("BeginArray%s", sizeLabel(size)) }

func (r *Recorder) ParseError(offset int, text string, err error) bool {
	r.Errors = append(r.Errors, err)
	return r.pr("ParseError %d <%s>", offset, text)
}

// sizeLabel omits the size hint when it has the "unknown" value, to keep the
// recorded output readable.
func sizeLabel(size int) string {
	if size == int(^uint(0)>>1) {
		return ""
	}
	return fmt.Sprintf(" %d", size)
}
