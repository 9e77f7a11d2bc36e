// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec holds the session state for a matrix program: the symbol
// table, the random source, and the registries of files opened by the
// I/O statements. It also defines the executable command types the
// parser produces.
package exec

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"github.com/mtx-lang/mtx/config"
	"github.com/mtx-lang/mtx/value"
)

// Context holds the execution context. It implements value.Context.
// One Context is created per program run and torn down by Close.
type Context struct {
	config *config.Config
	vars   map[string]*value.Var
	rng    *rand.Rand

	readFiles  []*ReadFile
	writeFiles []*WriteFile
	saveFiles  []*SaveFile
	common     *MatrixWriter
}

// NewContext returns a new execution context for the given configuration.
func NewContext(conf *config.Config) *Context {
	return &Context{
		config: conf,
		vars:   make(map[string]*value.Var),
	}
}

// Config returns the context's configuration.
func (c *Context) Config() *config.Config {
	return c.config
}

// Lookup returns the named variable, or nil if it has never been named.
// Variable names are case-insensitive.
func (c *Context) Lookup(name string) *value.Var {
	return c.vars[strings.ToUpper(name)]
}

// Declare returns the named variable, creating it uninitialized if
// needed.
func (c *Context) Declare(name string) *value.Var {
	key := strings.ToUpper(name)
	v := c.vars[key]
	if v == nil {
		v = value.NewVar(name, nil)
		c.vars[key] = v
	}
	return v
}

// Assign assigns to the named variable, creating it if needed.
func (c *Context) Assign(name string, m *value.Matrix) {
	c.Declare(name).Assign(m)
}

// Rand returns the context's random source, creating it on first use
// from the configured seed or, absent one, from the clock. The PCG
// source satisfies the distribution types' Source interface.
func (c *Context) Rand() *rand.Rand {
	if c.rng == nil {
		seed, ok := c.config.Seed()
		if !ok {
			seed = uint64(time.Now().UnixNano())
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
	return c.rng
}

// Errorf reports an execution error by panicking with a value.Error,
// which the driver recovers per command.
func (c *Context) Errorf(format string, args ...interface{}) {
	panic(value.Error(fmt.Sprintf(format, args...)))
}

// Warnf reports a non-fatal condition on the error output.
func (c *Context) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(c.config.ErrOutput(), "warning: %s\n", fmt.Sprintf(format, args...))
}

// Vars returns the initialized variables sorted by name.
func (c *Context) Vars() []*value.Var {
	var vars []*value.Var
	for _, v := range c.vars {
		if v.Value() != nil {
			vars = append(vars, v)
		}
	}
	sort.Slice(vars, func(i, j int) bool {
		return strings.ToUpper(vars[i].Name()) < strings.ToUpper(vars[j].Name())
	})
	return vars
}

// Close flushes and closes every file the program opened. It returns
// the first error encountered, after attempting all of them.
func (c *Context) Close() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	for _, rf := range c.readFiles {
		keep(rf.close())
	}
	for _, wf := range c.writeFiles {
		keep(wf.close())
	}
	for _, sf := range c.saveFiles {
		keep(sf.close())
	}
	if c.common != nil {
		keep(c.common.close())
	}
	return first
}
