// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jparse parses, validates, and traces JSON text.
//
// Usage:
//
//	jparse parse [flags] [file ...]
//	jparse check [flags] [file ...]
//	jparse events [flags] [file ...]
//
// With no file arguments, each command reads standard input.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/ast"
	"github.com/creachadair/jparse/ast/cursor"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

func main() {
	logger, level := newLogger()
	os.Exit(runMain(logger, level, os.Args[1:]))
}

// runMain executes the command line described by args and returns the exit
// status. The logger is flushed before runMain returns.
func runMain(logger *zap.Logger, level zap.AtomicLevel, args []string) int {
	defer logger.Sync() //nolint:errcheck

	root := newRootCommand(logger, level)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// newLogger returns a new logger at info level, and a handle to adjust it.
func newLogger() (*zap.Logger, zap.AtomicLevel) {
	logConf := zap.NewDevelopmentConfig()
	logConf.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logConf.DisableStacktrace = true
	logger, err := logConf.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger. error: %v", err)
	}
	return logger, logConf.Level
}

// tool carries the state shared by the subcommands.
type tool struct {
	logger *zap.Logger
	level  zap.AtomicLevel
	set    settings
	config string
}

func newRootCommand(logger *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	t := &tool{logger: logger, level: level, set: defaultSettings()}

	root := &cobra.Command{
		Use:           "jparse",
		Short:         "Parse, validate, and trace JSON text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if t.config != "" {
				cfg, err := loadConfig(t.config, t.set, cmd.Flags())
				if err != nil {
					t.logger.Error("invalid configuration", zap.String("file", t.config), zap.Error(err))
					return err
				}
				t.set = cfg
			} else if err := t.set.validate(); err != nil {
				t.logger.Error("invalid flags", zap.Error(err))
				return err
			}
			if t.set.Verbose {
				t.level.SetLevel(zap.DebugLevel)
			}
			t.logger.Debug("settings", zap.Any("settings", t.set))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&t.set.Strict, "strict", t.set.Strict, "Reject input with trailing content after the value")
	pf.BoolVar(&t.set.Comments, "comments", false, "Allow line and block comments")
	pf.BoolVar(&t.set.TrailingCommas, "trailing-commas", false, "Allow a comma after the last element")
	pf.BoolVar(&t.set.JWCC, "jwcc", false, "Standardize JWCC (JSON with commas and comments) input before parsing")
	pf.IntVar(&t.set.MaxDepth, "max-depth", 0, "Maximum nesting depth (0 means unlimited)")
	pf.StringVar(&t.config, "config", "", "Path to a TOML config file")
	pf.BoolVarP(&t.set.Verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(t.parseCommand(), t.checkCommand(), t.eventsCommand())
	return root
}

func (t *tool) parseCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:     "parse [file ...]",
		Short:   "Parse JSON values and print them",
		Example: `jparse parse --format yaml --path items/0 input.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parsePath(path)
			if err != nil {
				return err
			}
			var nfail int
			err = t.eachInput(cmd, args, func(name string, data []byte) error {
				opts := t.set.options()
				opts.Filter = dropKeys(t.set.DropKeys)
				v, err := jparse.NewParser(bytes.NewReader(data), opts).Parse(t.set.Strict)
				if err != nil {
					nfail++
					t.logError("parse failed", name, err)
					return nil
				}
				if len(steps) != 0 {
					v, err = cursor.Find(v, steps...)
					if err != nil {
						nfail++
						t.logger.Error("path not found", zap.String("file", name), zap.String("path", path), zap.Error(err))
						return nil
					}
				}
				return writeValue(cmd.OutOrStdout(), v, t.set.Format)
			})
			if err != nil {
				return err
			} else if nfail != 0 {
				return fmt.Errorf("%d input(s) failed", nfail)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Select a value by path (e.g., items/0/name)")
	cmd.Flags().StringVar(&t.set.Format, "format", t.set.Format, "Output format (json or yaml)")
	cmd.Flags().StringSliceVar(&t.set.DropKeys, "drop-key", nil, "Discard object members with this key (repeatable)")
	return cmd
}

func (t *tool) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file ...]",
		Short: "Report whether inputs are valid JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var nbad int
			err := t.eachInput(cmd, args, func(name string, data []byte) error {
				status := "ok"
				if !jparse.NewParser(bytes.NewReader(data), t.set.options()).Accept(t.set.Strict) {
					status = "invalid"
					nbad++
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, status)
				return err
			})
			if err != nil {
				return err
			} else if nbad != 0 {
				return fmt.Errorf("%d input(s) invalid", nbad)
			}
			return nil
		},
	}
}

func (t *tool) eventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events [file ...]",
		Short: "Print the parse events for each input",
		RunE: func(cmd *cobra.Command, args []string) error {
			var nfail int
			err := t.eachInput(cmd, args, func(name string, data []byte) error {
				ep := &eventPrinter{w: cmd.OutOrStdout()}
				if !jparse.NewParser(bytes.NewReader(data), t.set.options()).Push(ep, t.set.Strict) {
					nfail++
					if ep.err != nil {
						t.logError("parse failed", name, ep.err)
					}
				}
				return ep.werr
			})
			if err != nil {
				return err
			} else if nfail != 0 {
				return fmt.Errorf("%d input(s) failed", nfail)
			}
			return nil
		},
	}
}

// eachInput calls f with the contents of each named file, or of stdin if
// there are no names. An error from f stops the iteration.
func (t *tool) eachInput(cmd *cobra.Command, names []string, f func(name string, data []byte) error) error {
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			t.logger.Error("read failed", zap.String("file", name), zap.Error(err))
			return err
		}
		if t.set.JWCC {
			data, err = hujson.Standardize(data)
			if err != nil {
				t.logger.Error("invalid JWCC input", zap.String("file", name), zap.Error(err))
				return err
			}
		}
		t.logger.Debug("read input", zap.String("file", name), zap.Int("bytes", len(data)))
		if err := f(name, data); err != nil {
			return err
		}
	}
	return nil
}

func (t *tool) logError(msg, name string, err error) {
	t.logger.Error(msg, zap.String("file", name), zap.Int("offset", errorOffset(err)), zap.Error(err))
}

// errorOffset returns the input offset reported by err, or -1.
func errorOffset(err error) int {
	var se *jparse.SyntaxError
	var ne *jparse.NumberError
	switch {
	case errors.As(err, &se):
		return se.Offset
	case errors.As(err, &ne):
		return ne.Offset
	}
	return -1
}

// parsePath splits a slash-separated path into cursor steps. Steps that are
// integers index arrays and objects; all others are object keys.
func parsePath(path string) ([]any, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}
	var steps []any
	for _, elt := range strings.Split(path, "/") {
		if elt == "" {
			return nil, fmt.Errorf("invalid path %q: empty element", path)
		}
		if n, err := strconv.Atoi(elt); err == nil {
			steps = append(steps, n)
		} else {
			steps = append(steps, elt)
		}
	}
	return steps, nil
}

// dropKeys returns a filter that discards object members whose key is one of
// keys, or nil if keys is empty.
func dropKeys(keys []string) jparse.Callback {
	if len(keys) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(keys))
	for _, key := range keys {
		drop[key] = true
	}
	return func(_ int, e jparse.Event, v *ast.Value) bool {
		return e != jparse.EventKey || !drop[v.Str()]
	}
}
