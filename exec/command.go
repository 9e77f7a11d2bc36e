// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"

	"github.com/mtx-lang/mtx/value"
)

// A Command is one executable statement. Execute reports whether
// execution should continue: only BREAK returns false, and the
// enclosing LOOP absorbs it.
type Command interface {
	Execute(c *Context) bool
}

// runBlock executes a command block, propagating a BREAK.
func runBlock(c *Context, body []Command) bool {
	for _, cmd := range body {
		if !cmd.Execute(c) {
			return false
		}
	}
	return true
}

// Compute is COMPUTE lvalue = expr.
type Compute struct {
	Target *Lvalue
	RHS    value.Expr
}

func (cmd *Compute) Execute(c *Context) bool {
	cmd.Target.Assign(c, cmd.RHS.Eval(c), cmd.RHS.Span())
	return true
}

// DoIf is a DO IF ... ELSE IF ... ELSE ... END IF construct. The final
// ELSE, if present, is a clause with a nil condition.
type DoIf struct {
	Clauses []DoIfClause
}

type DoIfClause struct {
	Cond value.Expr
	Body []Command
}

func (cmd *DoIf) Execute(c *Context) bool {
	for i, clause := range cmd.Clauses {
		if clause.Cond != nil {
			name := "DO IF"
			if i > 0 {
				name = "ELSE IF"
			}
			if value.EvalScalar(c, clause.Cond, name) <= 0 {
				continue
			}
		}
		return runBlock(c, clause.Body)
	}
	return true
}

// Loop is LOOP [var=start TO end [BY step]] [IF cond] ... END LOOP
// [IF cond]. Var is empty when there is no index clause.
type Loop struct {
	Var        string
	Start, End value.Expr
	By         value.Expr
	TopCond    value.Expr
	BottomCond value.Expr
	Body       []Command
}

func (cmd *Loop) Execute(c *Context) bool {
	var val, end int
	incr := 1
	if cmd.Var != "" {
		val = value.EvalInteger(c, cmd.Start, "LOOP")
		end = value.EvalInteger(c, cmd.End, "TO")
		if cmd.By != nil {
			incr = value.EvalInteger(c, cmd.By, "BY")
		}
		if incr == 0 || incr > 0 && val > end || incr < 0 && val < end {
			return true
		}
	}

	for i := 0; i < c.config.MaxLoops(); i++ {
		if cmd.Var != "" {
			// The index variable is forced back to a fresh scalar
			// each iteration, whatever the body did to it.
			v := c.Declare(cmd.Var)
			m := v.Value()
			if m == nil || !m.IsScalar() {
				m = value.NewMatrix(1, 1)
				v.Assign(m)
			}
			m.Data()[0] = float64(val)
		}

		if cmd.TopCond != nil && value.EvalScalar(c, cmd.TopCond, "LOOP IF") <= 0 {
			return true
		}

		if !runBlock(c, cmd.Body) {
			return true
		}

		if cmd.BottomCond != nil && value.EvalScalar(c, cmd.BottomCond, "END LOOP IF") > 0 {
			return true
		}

		if cmd.Var != "" {
			val += incr
			if incr > 0 && val > end || incr < 0 && val < end {
				return true
			}
		}
	}
	return true
}

// Break is the BREAK statement. The parser only accepts it inside a
// LOOP body.
type Break struct{}

func (Break) Execute(c *Context) bool {
	return false
}

// Release is RELEASE var, var, ...
type Release struct {
	Names []string
}

func (cmd *Release) Execute(c *Context) bool {
	for _, name := range cmd.Names {
		if v := c.Lookup(name); v != nil {
			v.Assign(nil)
		}
	}
	return true
}

// Display is the DISPLAY statement: a table of the initialized
// variables.
type Display struct{}

func (Display) Execute(c *Context) bool {
	out := c.config.Output()
	fmt.Fprintf(out, "%-10s %6s %8s %10s\n", "Variable", "Rows", "Columns", "Size (kB)")
	for _, v := range c.Vars() {
		m := v.Value()
		fmt.Fprintf(out, "%-10s %6d %8d %10d\n",
			v.Name(), m.Rows(), m.Cols(), m.Rows()*m.Cols()*8/1024)
	}
	return true
}
