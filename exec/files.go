// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mtx-lang/mtx/value"
)

// A ReadFile is a text file opened by READ. All READ statements naming
// the same file share one ReadFile, so they consume its records in
// sequence. The current record stays current until Forward discards it.
type ReadFile struct {
	name string
	f    *os.File
	sc   *bufio.Scanner
	cur  string
	have bool
	last string
	read bool // whether last is valid
}

// ReadFile returns the reader for the named file, opening it on first
// use.
func (c *Context) ReadFile(ctx value.Context, name string) *ReadFile {
	for _, rf := range c.readFiles {
		if rf.name == name {
			return rf
		}
	}
	f, err := os.Open(name)
	if err != nil {
		ctx.Errorf("cannot open %s for reading: %v", name, err)
	}
	rf := &ReadFile{name: name, f: f, sc: bufio.NewScanner(f)}
	c.readFiles = append(c.readFiles, rf)
	return rf
}

// Record returns the current input record, reading a new one if the
// previous record was discarded.
func (rf *ReadFile) Record(ctx value.Context) string {
	if !rf.have {
		if !rf.sc.Scan() {
			if err := rf.sc.Err(); err != nil {
				ctx.Errorf("error reading %s: %v", rf.name, err)
			}
			ctx.Errorf("unexpected end of file reading matrix data from %s", rf.name)
		}
		rf.cur = rf.sc.Text()
		rf.have = true
		rf.last = rf.cur
		rf.read = true
	}
	return rf.cur
}

// Forward discards the current record so that the next Record call
// reads a fresh one.
func (rf *ReadFile) Forward() {
	rf.have = false
}

// Reread makes the most recently read record current again, for READ
// with the REREAD flag. It has no effect before the first read.
func (rf *ReadFile) Reread() {
	if rf.read {
		rf.cur = rf.last
		rf.have = true
	}
}

// AtEOF reports whether the file is exhausted. If no record is
// current it reads ahead, and a record so read stays current for the
// next READ.
func (rf *ReadFile) AtEOF() bool {
	if rf.have {
		return false
	}
	if !rf.sc.Scan() {
		return true
	}
	rf.cur = rf.sc.Text()
	rf.have = true
	rf.last = rf.cur
	rf.read = true
	return false
}

func (rf *ReadFile) close() error {
	return rf.f.Close()
}

// EOFExpr is the expression EOF(file): 1 if the file has no more
// records, else 0. A file that cannot be opened counts as exhausted.
type EOFExpr struct {
	File string
	Line int
}

func (e *EOFExpr) ProgString() string {
	return fmt.Sprintf("EOF(%s)", e.File)
}

func (e *EOFExpr) Span() value.Span {
	return value.Span{Start: e.Line, End: e.Line}
}

func (e *EOFExpr) Eval(ctx value.Context) *value.Matrix {
	c := ctx.(*Context)
	for _, rf := range c.readFiles {
		if rf.name == e.File {
			if rf.AtEOF() {
				return value.Scalar(1)
			}
			return value.Scalar(0)
		}
	}
	f, err := os.Open(e.File)
	if err != nil {
		return value.Scalar(1)
	}
	rf := &ReadFile{name: e.File, f: f, sc: bufio.NewScanner(f)}
	c.readFiles = append(c.readFiles, rf)
	if rf.AtEOF() {
		return value.Scalar(1)
	}
	return value.Scalar(0)
}

// A WriteFile is a text file opened by WRITE. A partially filled line
// left by /HOLD is carried here until the next WRITE to the same file,
// or flushed at teardown.
type WriteFile struct {
	name string
	f    *os.File
	w    *bufio.Writer
	held string
	hold bool
}

// WriteFile returns the writer for the named file, creating the file on
// first use.
func (c *Context) WriteFile(ctx value.Context, name string) *WriteFile {
	for _, wf := range c.writeFiles {
		if wf.name == name {
			return wf
		}
	}
	f, err := os.Create(name)
	if err != nil {
		ctx.Errorf("cannot open %s for writing: %v", name, err)
	}
	wf := &WriteFile{name: name, f: f, w: bufio.NewWriter(f)}
	c.writeFiles = append(c.writeFiles, wf)
	return wf
}

// TakeHeld returns and clears any held partial line.
func (wf *WriteFile) TakeHeld() (string, bool) {
	if !wf.hold {
		return "", false
	}
	wf.hold = false
	held := wf.held
	wf.held = ""
	return held, true
}

// Hold saves a partial line to be continued by the next WRITE.
func (wf *WriteFile) Hold(line string) {
	wf.held = line
	wf.hold = true
}

// WriteLine writes one complete output line.
func (wf *WriteFile) WriteLine(ctx value.Context, line string) {
	if _, err := wf.w.WriteString(line + "\n"); err != nil {
		ctx.Errorf("error writing %s: %v", wf.name, err)
	}
}

func (wf *WriteFile) close() error {
	if wf.hold {
		wf.w.WriteString(wf.held + "\n")
		wf.hold = false
	}
	if err := wf.w.Flush(); err != nil {
		wf.f.Close()
		return err
	}
	return wf.f.Close()
}

// A SaveFile accumulates the case data written by SAVE statements. The
// first SAVE to a file fixes its column count and names; the file is
// CSV with a header row.
type SaveFile struct {
	name      string
	f         *os.File
	w         *csv.Writer
	colNames  []string
	stringCol map[string]bool
	firstSpan value.Span
}

// SaveFile returns the case writer for the named file, creating it with
// the given column names on first use. Later SAVEs to the same file get
// the existing writer and must match its column count.
func (c *Context) SaveFile(ctx value.Context, name string) *SaveFile {
	for _, sf := range c.saveFiles {
		if sf.name == name {
			return sf
		}
	}
	f, err := os.Create(name)
	if err != nil {
		ctx.Errorf("cannot open %s for writing: %v", name, err)
	}
	sf := &SaveFile{name: name, f: f, w: csv.NewWriter(f)}
	c.saveFiles = append(c.saveFiles, sf)
	return sf
}

func (sf *SaveFile) close() error {
	sf.w.Flush()
	if err := sf.w.Error(); err != nil {
		sf.f.Close()
		return err
	}
	return sf.f.Close()
}

// A MatrixWriter is the program-wide destination for MSAVE statements.
// The first MSAVE's OUTFILE, VARIABLES, FNAMES, and SNAMES settings
// become the common configuration that later MSAVEs must agree with.
type MatrixWriter struct {
	Outfile  string
	Varnames []string
	Fnames   []string
	Snames   []string

	f *os.File
	w *csv.Writer
}

// MatrixWriterFor returns the common MSAVE destination, creating it from
// the given settings on first use. If one exists already, it is returned
// unchanged; callers enforce agreement with it.
func (c *Context) MatrixWriterFor(mw *MatrixWriter) *MatrixWriter {
	if c.common == nil {
		c.common = mw
	}
	return c.common
}

// Common returns the MSAVE common configuration, nil before the first
// MSAVE.
func (c *Context) Common() *MatrixWriter {
	return c.common
}

// WriteRecord appends one row to the matrix file, opening it and
// writing its header first if needed.
func (mw *MatrixWriter) WriteRecord(ctx value.Context, record []string) {
	if mw.f == nil {
		f, err := os.Create(mw.Outfile)
		if err != nil {
			ctx.Errorf("cannot open %s for writing: %v", mw.Outfile, err)
		}
		mw.f = f
		mw.w = csv.NewWriter(f)
		var header []string
		header = append(header, mw.Snames...)
		header = append(header, "ROWTYPE_")
		header = append(header, mw.Fnames...)
		header = append(header, "VARNAME_")
		header = append(header, mw.Varnames...)
		mw.w.Write(header)
	}
	if err := mw.w.Write(record); err != nil {
		ctx.Errorf("error writing %s: %v", mw.Outfile, err)
	}
}

func (mw *MatrixWriter) close() error {
	if mw.f == nil {
		return nil
	}
	mw.w.Flush()
	if err := mw.w.Error(); err != nil {
		mw.f.Close()
		return err
	}
	return mw.f.Close()
}
