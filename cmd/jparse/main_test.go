// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(zap.NewNop(), zap.NewAtomicLevel())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	const input = `{"b": 1, "a": [true, null], "c": {"b": "x"}}`
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{"Default", input, nil, `{"a":[true,null],"b":1,"c":{"b":"x"}}`},
		{"Path", input, []string{"--path", "a/0"}, "true"},
		{"PathIndexObject", input, []string{"--path", "/2/b/"}, `"x"`},
		{"DropKey", input, []string{"--drop-key", "b"}, `{"a":[true,null],"c":{}}`},
		{"DropKeys", input, []string{"--drop-key", "a,c"}, `{"b":1}`},
		{"YAML", `{"b": 1, "a": "x"}`, []string{"--format", "yaml"}, "a: x\nb: 1"},
		{"Comments", "[1, // one\n 2]", []string{"--comments"}, "[1,2]"},
		{"TrailingCommas", "[1, 2,]", []string{"--trailing-commas"}, "[1,2]"},
		{"JWCC", `{"a": 1, /* c */ }`, []string{"--jwcc"}, `{"a":1}`},
		{"NonStrict", "[1] trailing", []string{"--strict=false"}, "[1]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, tc.input, append([]string{"parse"}, tc.args...)...)
			if err != nil {
				t.Fatalf("parse %q: unexpected error: %v", tc.args, err)
			}
			if diff := cmp.Diff(tc.want, strings.TrimSpace(got)); diff != "" {
				t.Errorf("parse %q output (-want, +got):\n%s", tc.args, diff)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
	}{
		{"Syntax", `{"x": }`, nil},
		{"Trailing", "[1] trailing", nil},
		{"Comments", "[1, // one\n 2]", nil},
		{"MaxDepth", "[[1]]", []string{"--max-depth", "1"}},
		{"Overflow", "[1e400]", nil},
		{"NoPath", `{"a": 1}`, []string{"--path", "b"}},
		{"BadPath", `{"a": 1}`, []string{"--path", "a//b"}},
		{"BadFormat", `{"a": 1}`, []string{"--format", "xml"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, tc.input, append([]string{"parse"}, tc.args...)...)
			if err == nil {
				t.Errorf("parse %q: got %q, want error", tc.args, got)
			} else if got != "" {
				t.Errorf("parse %q: unexpected output %q", tc.args, got)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(good, []byte(`{"ok": [1, 2, 3]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"ok": [1, 2, 3}`), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "", "check", good)
	if err != nil {
		t.Errorf("check: unexpected error: %v", err)
	}
	if want := good + ": ok\n"; got != want {
		t.Errorf("check: got %q, want %q", got, want)
	}

	got, err = run(t, "", "check", good, bad)
	if err == nil {
		t.Error("check: got nil error, want error")
	}
	if want := good + ": ok\n" + bad + ": invalid\n"; got != want {
		t.Errorf("check: got %q, want %q", got, want)
	}

	got, err = run(t, "true", "check")
	if err != nil || got != "-: ok\n" {
		t.Errorf("check stdin: got %q, %v; want ok", got, err)
	}

	if _, err := run(t, "", "check", filepath.Join(dir, "nonesuch.json")); err == nil {
		t.Error("check missing file: got nil error, want error")
	}
}

func TestEventsCommand(t *testing.T) {
	got, err := run(t, `{"a": [1, -2, 2.5e0, "s\t"], "b": false}`, "events")
	if err != nil {
		t.Fatalf("events: unexpected error: %v", err)
	}
	const want = `begin_object
key "a"
begin_array
uint 1
int -2
float 2.5e0
string "s\t"
end_array
key "b"
bool false
end_object
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want, +got):\n%s", diff)
	}

	got, err = run(t, `[1,`, "events")
	if err == nil {
		t.Error("events: got nil error, want error")
	}
	const wantErr = "begin_array\nuint 1\nerror offset=3 text=\"\"\n"
	if diff := cmp.Diff(wantErr, got); diff != "" {
		t.Errorf("events (-want, +got):\n%s", diff)
	}
}

func TestDropKeys(t *testing.T) {
	if f := dropKeys(nil); f != nil {
		t.Error("dropKeys(nil): got a filter, want nil")
	}
	opts := &jparse.Options{Filter: dropKeys([]string{"secret"})}
	v, err := jparse.Parse(strings.NewReader(`{"secret": 1, "a": {"secret": [2], "b": 3}}`), opts)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if got, want := v.JSON(), `{"a":{"b":3}}`; got != want {
		t.Errorf("Parse: got %#q, want %#q", got, want)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  []any
	}{
		{"", nil},
		{"/", nil},
		{"a", []any{"a"}},
		{"a/0/b", []any{"a", 0, "b"}},
		{"/-1/x/", []any{-1, "x"}},
	}
	for _, tc := range tests {
		got, err := parsePath(tc.input)
		if err != nil {
			t.Errorf("parsePath(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("parsePath(%q) (-want, +got):\n%s", tc.input, diff)
		}
	}
	if got, err := parsePath("a//b"); err == nil {
		t.Errorf("parsePath(a//b): got %v, want error", got)
	}
}

// syncBuffer is a zapcore.WriteSyncer that records whether it was synced.
type syncBuffer struct {
	bytes.Buffer
	synced bool
}

func (s *syncBuffer) Sync() error { s.synced = true; return nil }

func TestRunMain(t *testing.T) {
	var buf syncBuffer
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	logger := zap.New(zapcore.NewCore(enc, &buf, level))

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"x": }`), 0600); err != nil {
		t.Fatal(err)
	}
	if got := runMain(logger, level, []string{"parse", path}); got != 1 {
		t.Errorf("runMain: got exit status %d, want 1", got)
	}
	if !buf.synced {
		t.Error("runMain: logger was not synced before exit")
	}
	if got := buf.String(); !strings.Contains(got, "parse failed") || !strings.Contains(got, path) {
		t.Errorf("runMain: log %q does not report the failure", got)
	}

	buf = syncBuffer{}
	if got := runMain(logger, level, []string{"check", "--nonesuch", path}); got != 1 {
		t.Errorf("runMain with unknown flag: got exit status %d, want 1", got)
	}
	if !buf.synced {
		t.Error("runMain with unknown flag: logger was not synced")
	}
}

func TestNewLogger(t *testing.T) {
	logger, level := newLogger()
	if got := level.Level(); got != zap.InfoLevel {
		t.Errorf("Initial level: got %v, want %v", got, zap.InfoLevel)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Debug logging is enabled by default")
	}
	level.SetLevel(zap.DebugLevel)
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Debug logging is not enabled after SetLevel")
	}
}
