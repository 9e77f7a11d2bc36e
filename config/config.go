// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings that control one interpreter run.
package config // import "github.com/mtx-lang/mtx/config"

import (
	"io"
	"os"
)

// A Config holds the user-settable state of the interpreter: where output
// goes, the loop iteration cap, the random seed, and debugging switches.
// The zero value is ready to use.
type Config struct {
	output    io.Writer
	errOutput io.Writer
	maxLoops  int
	seed      uint64
	seedSet   bool
	debug     map[string]bool
}

// DefaultMaxLoops is the iteration cap applied to LOOP commands when no
// other value has been configured.
const DefaultMaxLoops = 40

// Output returns the writer for program output (PRINT, DISPLAY).
func (c *Config) Output() io.Writer {
	if c.output == nil {
		return os.Stdout
	}
	return c.output
}

// SetOutput sets the writer for program output.
func (c *Config) SetOutput(w io.Writer) {
	c.output = w
}

// ErrOutput returns the writer for error messages.
func (c *Config) ErrOutput() io.Writer {
	if c.errOutput == nil {
		return os.Stderr
	}
	return c.errOutput
}

// SetErrOutput sets the writer for error messages.
func (c *Config) SetErrOutput(w io.Writer) {
	c.errOutput = w
}

// MaxLoops returns the LOOP iteration cap.
func (c *Config) MaxLoops() int {
	if c.maxLoops <= 0 {
		return DefaultMaxLoops
	}
	return c.maxLoops
}

// SetMaxLoops sets the LOOP iteration cap.
func (c *Config) SetMaxLoops(n int) {
	c.maxLoops = n
}

// Seed returns the configured random seed and whether one was set.
func (c *Config) Seed() (uint64, bool) {
	return c.seed, c.seedSet
}

// SetSeed sets the random seed used for the RV.* functions.
func (c *Config) SetSeed(seed uint64) {
	c.seed = seed
	c.seedSet = true
}

// Debug reports whether the named debugging switch is on.
func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

// SetDebug sets the state of the named debugging switch.
func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}
