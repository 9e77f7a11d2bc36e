// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"golang.org/x/exp/rand"

	"github.com/mtx-lang/mtx/config"
)

// A Var is a named matrix variable. A variable exists from the moment it
// is named as a destination; its value stays nil until first assigned,
// and RELEASE returns it to the nil state.
type Var struct {
	name  string
	value *Matrix
}

// Name returns v's name as first written.
func (v *Var) Name() string {
	return v.name
}

// Value returns v's current value, nil if uninitialized.
func (v *Var) Value() *Matrix {
	return v.value
}

// Assign assigns value to v.
func (v *Var) Assign(value *Matrix) {
	v.value = value
}

// NewVar returns a new Var with the given name and value.
func NewVar(name string, value *Matrix) *Var {
	return &Var{name: name, value: value}
}

// Context is the execution context for evaluation.
// The only implementation is ../exec/Context, but the interface
// is defined separately, here, because of the dependence on Matrix
// and the import cycle that would otherwise result.
type Context interface {
	// Config returns the configuration state for evaluation.
	Config() *config.Config

	// Lookup returns the named variable, or nil if it has never been
	// mentioned. Names are case-insensitive.
	Lookup(name string) *Var

	// Declare returns the named variable, creating it uninitialized
	// if it does not exist yet.
	Declare(name string) *Var

	// Assign assigns to the named variable, creating it if needed.
	Assign(name string, value *Matrix)

	// Rand returns the random source for the RV.* functions.
	Rand() *rand.Rand

	// Errorf reports an execution error and halts execution of the
	// current command by panicking with type Error.
	Errorf(format string, args ...interface{})

	// Warnf reports a condition that does not halt execution, writing
	// it to the configured error output.
	Warnf(format string, args ...interface{})
}
