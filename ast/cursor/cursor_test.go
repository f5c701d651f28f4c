// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/ast"
	"github.com/creachadair/jparse/ast/cursor"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestCursor(t *testing.T) {
	v, err := jparse.Parse(strings.NewReader(testJSON), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name string
		path []any
		want string
		fail bool
	}{
		{"NilInput", nil, v.JSON(), false},
		{"NoMatch", []any{"nonesuch"}, v.JSON(), true},
		{"ObjIndex", []any{0}, `[{"x":1},{"x":2}]`, false},
		{"ObjIndexNeg", []any{-1}, `{"hello":"there"}`, false},
		{"ObjIndexRange", []any{11}, v.JSON(), true},

		{"ArrayPos", []any{"list", 1}, `{"x":2}`, false},
		{"ArrayNeg", []any{"list", -2, "x"}, `1`, false},
		{"ArrayRange", []any{"o", 25}, `["hi","yourself"]`, true},
		{"ArrayKey", []any{"o", "hi"}, `["hi","yourself"]`, true},
		{"ScalarIndex", []any{"y", "hello", 0}, `"there"`, true},
		{"ObjPath", []any{"xyz", "q"}, `false`, false},

		{"FuncArray", []any{"o", testPathFunc}, `2`, false},
		{"FuncObj", []any{"xyz", testPathFunc}, `3`, false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, `true`, true},
		{"BadElement", []any{"list", 1.5}, `[{"x":1},{"x":2}]`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Errorf("Down %+v: got nil error, want error", tc.path)
			}
			if got := c.Value().JSON(); got != tc.want {
				t.Errorf("Down %+v: got %#q, want %#q", tc.path, got, tc.want)
			}
		})
	}
}

func TestCursorMoves(t *testing.T) {
	v, err := jparse.Parse(strings.NewReader(testJSON), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := cursor.New(v)
	if !c.AtOrigin() || c.Origin() != v {
		t.Fatal("New cursor is not at its origin")
	}
	c.Down("list", 0, "x")
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path: got %d values, want 4", got)
	}
	if got := c.Up().Value().JSON(); got != `{"x":1}` {
		t.Errorf("Up: got %#q, want {\"x\":1}", got)
	}
	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down: got nil error, want error")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, error %v", c.AtOrigin(), c.Err())
	}
}

func TestFind(t *testing.T) {
	v := jparse.MustParse(strings.NewReader(testJSON), nil)
	got, err := cursor.Find(v, "y", "hello")
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}
	if got.Str() != "there" {
		t.Errorf("Find: got %v, want \"there\"", got)
	}
	if got, err := cursor.Find(v, "list", 5); err == nil {
		t.Errorf("Find: got %v, want error", got)
	}
}

func testPathFunc(v *ast.Value) (*ast.Value, error) {
	switch v.Kind() {
	case ast.Array, ast.Object:
		return ast.NewInt(int64(v.Len())), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}
