// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "github.com/mtx-lang/mtx"

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mtx-lang/mtx/config"
	"github.com/mtx-lang/mtx/run"
)

var (
	execute  = flag.String("e", "", "run the argument as a matrix program")
	maxLoops = flag.Int("maxloops", 0, "maximum LOOP iterations; 0 means the default")
	seed     = flag.Uint64("seed", 0, "seed for the random number generator")
	debug    = flag.String("debug", "", "comma-separated debug settings, e.g. tokens,panic")
)

var conf config.Config

func main() {
	log.SetFlags(0)
	log.SetPrefix("mtx: ")

	flag.Usage = usage
	flag.Parse()

	if *maxLoops > 0 {
		conf.SetMaxLoops(*maxLoops)
	}
	if *seed != 0 {
		conf.SetSeed(*seed)
	}
	for _, d := range strings.Split(*debug, ",") {
		if d != "" {
			conf.SetDebug(d, true)
		}
	}
	conf.SetOutput(os.Stdout)
	conf.SetErrOutput(os.Stderr)

	if *execute != "" {
		if flag.NArg() > 0 {
			flag.Usage()
		}
		if !run.ProgramString(&conf, *execute) {
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		if !run.Program(&conf, "<stdin>", bufio.NewReader(os.Stdin)) {
			os.Exit(1)
		}
		return
	}

	ok := true
	for _, name := range flag.Args() {
		fd, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		if !run.Program(&conf, name, bufio.NewReader(fd)) {
			ok = false
		}
		fd.Close()
	}
	if !ok {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mtx [options] [file ...]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
