// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lzmadec decodes classic ".lzma" streams. It is a decode-only
// relative of the teacher's lzmago: no compression side, since the
// decoder package this command wraps never produces LZMA streams.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-lzma/lzma/internal/xtrace"
	"github.com/go-lzma/lzma/pxflag"
)

const usageStr = `Usage: lzmadec [OPTION]... [FILE]...
Decompress FILEs in the classic .lzma format (by default, in place,
stripping the .lzma suffix).

  -c, --stdout      write to standard output and don't delete input files
  -f, --force       force overwrite of output file
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -v, --verbose     trace decoded packets to stderr
  --config PATH     load defaults from a TOML config file

With no file, or when FILE is -, read standard input.
`

type options struct {
	stdout bool
	force  bool
	keep   bool
	trace  *xtrace.Logger
}

func usage(w io.Writer) { fmt.Fprint(w, usageStr) }

var (
	warnLog = log.New(os.Stderr, "", 0)
)

func warn(err error)                       { warnLog.Println(err) }
func warnf(format string, a ...interface{}) { warnLog.Printf(format, a...) }

func main() {
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(cmdName + ": ")
	log.SetFlags(0)
	warnLog.SetPrefix(cmdName + ": ")

	pxflag.CommandLine = pxflag.NewFlagSet(cmdName, pxflag.ExitOnError)
	pxflag.CommandLine.Usage = func() { usage(os.Stderr); os.Exit(1) }

	help := pxflag.BoolP("help", "h", false, "")
	stdout := pxflag.BoolP("stdout", "c", false, "")
	force := pxflag.BoolP("force", "f", false, "")
	keep := pxflag.BoolP("keep", "k", false, "")
	verbose := pxflag.BoolP("verbose", "v", false, "")
	configPath := pxflag.StringP("config", "", "", "")

	if err := pxflag.Parse(); err != nil {
		log.Fatal(err)
	}
	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config %s: %s", *configPath, err)
	}
	opts := &options{
		stdout: *stdout,
		force:  *force || cfg.Force,
		keep:   *keep || cfg.Keep,
	}
	if *verbose || cfg.Verbose {
		opts.trace = xtrace.New(xtrace.Debug)
	} else {
		opts.trace = xtrace.Discard
	}

	args := pxflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		processFile(path, opts)
	}
}
