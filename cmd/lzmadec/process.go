// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/go-lzma/lzma/internal/xtrace"
	"github.com/go-lzma/lzma/lzma"
)

const lzmaSuffix = ".lzma"

// outputPath derives the decompressed file name for path by stripping a
// trailing ".lzma" suffix, mirroring the teacher's suffix-stripping
// convention for its compressor/decompressor pair.
func outputPath(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if !strings.HasSuffix(path, lzmaSuffix) {
		err = fmt.Errorf("path %s has no suffix %s", path, lzmaSuffix)
		return
	}
	base := filepath.Base(path)
	if base == lzmaSuffix {
		err = fmt.Errorf("path %s has only suffix %s as filename", path, lzmaSuffix)
		return
	}
	out = path[:len(path)-len(lzmaSuffix)]
	tmp = out + ".lzmadec-tmp"
	return
}

// userPathError strips the syscall-operation detail os.PathError carries,
// which is noise to a CLI user who only needs to know which file and why.
type userPathError struct {
	Path string
	Err  error
}

func (e *userPathError) Error() string { return e.Path + ": " + e.Err.Error() }

func userError(err error) error {
	pe, ok := err.(*os.PathError)
	if !ok {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

// signalHandler removes tmpPath if the process is interrupted mid-decode,
// so a partial output file never masquerades as a finished one.
func signalHandler(tmpPath string) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case <-sigch:
			if tmpPath != "-" {
				os.Remove(tmpPath)
			}
			os.Exit(7)
		}
	}()
	return quit
}

func decompress(w io.Writer, r io.Reader, trace *xtrace.Logger) error {
	br := bufio.NewReader(r)
	d, err := lzma.NewDecoder(br, lzma.WithTrace(trace))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err = d.Decode(bw); err != nil {
		return err
	}
	return bw.Flush()
}

func decompressFile(path, tmpPath string, opts *options) (err error) {
	var r *os.File
	if path == "-" {
		r = os.Stdin
	} else {
		r, err = os.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := r.Close(); err == nil {
				err = cerr
			}
		}()
	}

	var w *os.File
	if tmpPath == "-" {
		w = os.Stdout
	} else {
		if opts.force {
			os.Remove(tmpPath)
		}
		w, err = os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := w.Close(); err == nil {
				err = cerr
			}
		}()
	}

	return decompress(w, r, opts.trace)
}

func processFile(path string, opts *options) {
	out, tmp, err := outputPath(path)
	if err != nil {
		warn(userError(err))
		return
	}
	if opts.stdout {
		out, tmp = "-", "-"
	}
	if out != "-" {
		if _, err = os.Lstat(out); err == nil && !opts.force {
			warnf("file %s exists", out)
			return
		}
	}
	defer func() {
		if tmp != "-" {
			os.Remove(tmp)
		}
	}()

	quit := signalHandler(tmp)
	defer close(quit)

	if err = decompressFile(path, tmp, opts); err != nil {
		warn(userError(err))
		return
	}
	if tmp != "-" && out != "-" {
		if err = os.Rename(tmp, out); err != nil {
			warn(userError(err))
			return
		}
	}
	if !opts.keep && !opts.stdout && path != "-" {
		if err = os.Remove(path); err != nil {
			warn(userError(err))
		}
	}
}
