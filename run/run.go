// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run drives the parser and evaluator over a matrix program.
// It is factored out of main so it can be used for tests.
package run // import "github.com/mtx-lang/mtx/run"

import (
	"fmt"
	"io"
	"strings"

	"github.com/mtx-lang/mtx/config"
	"github.com/mtx-lang/mtx/exec"
	"github.com/mtx-lang/mtx/parse"
	"github.com/mtx-lang/mtx/scan"
	"github.com/mtx-lang/mtx/value"
)

// Run parses and executes commands until END MATRIX or end of input.
// Each command runs as soon as it parses, so a READ may consume data
// that an earlier WRITE in the same program produced. An error abandons
// the command that raised it, is reported to the configured error
// output, and execution continues with the next command, except that a
// broken program structure (an unknown command, or END MATRIX inside an
// unfinished block) stops the run. The return value reports whether the
// whole program ran without error.
func Run(p *parse.Parser, context value.Context) (success bool) {
	conf := context.Config()
	success = true
	for {
		cmd, more, ok := parseOne(p, conf)
		if !ok {
			success = false
			if p.Fatal() {
				return false
			}
		}
		if !more {
			return success
		}
		if cmd != nil && !execOne(cmd, context.(*exec.Context), conf) {
			success = false
		}
	}
}

// parseOne parses a single command, recovering from parse errors.
// more is false at END MATRIX or end of input; ok is false when the
// command failed to parse.
func parseOne(p *parse.Parser, conf *config.Config) (cmd exec.Command, more, ok bool) {
	defer func() {
		if err := recover(); err != nil {
			cmd, more, ok = nil, true, false
			reportError(conf, err)
		}
	}()
	cmd, more = p.Command()
	return cmd, more, true
}

// execOne executes a single command, recovering from execution errors.
func execOne(cmd exec.Command, context *exec.Context, conf *config.Config) (ok bool) {
	defer func() {
		if err := recover(); err != nil {
			ok = false
			reportError(conf, err)
		}
	}()
	cmd.Execute(context)
	return true
}

func reportError(conf *config.Config, err interface{}) {
	e, isEvalError := err.(value.Error)
	if !isEvalError || conf.Debug("panic") {
		panic(err)
	}
	fmt.Fprintf(conf.ErrOutput(), "%s\n", e)
}

// Program runs the matrix program in src with the given configuration,
// reporting whether it completed without error. It is the whole
// pipeline in one call, for main and for tests.
func Program(conf *config.Config, name string, src io.Reader) bool {
	context := exec.NewContext(conf)
	defer context.Close()
	scanner := scan.New(conf, name, toByteReader(src))
	p := parse.NewParser(name, scanner, context)
	return Run(p, context)
}

// ProgramString is Program over a source string.
func ProgramString(conf *config.Config, src string) bool {
	return Program(conf, "<string>", strings.NewReader(src))
}

func toByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}

type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(b.r, b.buf[:])
	return b.buf[0], err
}
