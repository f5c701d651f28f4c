// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/jparse"
	"github.com/spf13/pflag"
)

// settings are the parser and output settings shared by all subcommands.
type settings struct {
	Strict         bool
	Comments       bool
	TrailingCommas bool
	JWCC           bool
	MaxDepth       int
	Format         string
	DropKeys       []string
	Verbose        bool
}

func defaultSettings() settings {
	return settings{Strict: true, Format: "json"}
}

// options returns the parser options corresponding to s. The filter, if any,
// is installed by the caller.
func (s settings) options() *jparse.Options {
	return &jparse.Options{
		AllowComments:       s.Comments,
		AllowTrailingCommas: s.TrailingCommas,
		MaxDepth:            s.MaxDepth,
	}
}

func (s settings) validate() error {
	switch s.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", s.Format)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth %d", s.MaxDepth)
	}
	return nil
}

type fileConfig struct {
	Strict         bool     `toml:"strict"`
	Comments       bool     `toml:"comments"`
	TrailingCommas bool     `toml:"trailing_commas"`
	JWCC           bool     `toml:"jwcc"`
	MaxDepth       int      `toml:"max_depth"`
	Format         string   `toml:"format"`
	DropKeys       []string `toml:"drop_keys"`
	Verbose        bool     `toml:"verbose"`
}

// loadConfig reads a TOML config file from path and applies the settings it
// defines to base. A setting whose flag was set explicitly on the command
// line is not overridden.
func loadConfig(path string, base settings, flags *pflag.FlagSet) (settings, error) {
	cfg := base

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) != 0 {
		return settings{}, fmt.Errorf("load config: unknown setting %q", undec[0].String())
	}

	use := func(key, flag string) bool {
		return meta.IsDefined(key) && (flags == nil || !flags.Changed(flag))
	}
	if use("strict", "strict") {
		cfg.Strict = raw.Strict
	}
	if use("comments", "comments") {
		cfg.Comments = raw.Comments
	}
	if use("trailing_commas", "trailing-commas") {
		cfg.TrailingCommas = raw.TrailingCommas
	}
	if use("jwcc", "jwcc") {
		cfg.JWCC = raw.JWCC
	}
	if use("max_depth", "max-depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if use("format", "format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if use("drop_keys", "drop-key") {
		cfg.DropKeys = raw.DropKeys
	}
	if use("verbose", "verbose") {
		cfg.Verbose = raw.Verbose
	}
	return cfg, cfg.validate()
}
