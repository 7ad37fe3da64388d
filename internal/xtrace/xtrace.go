// Package xtrace provides a leveled debug logger for the lzma decoder.
//
// Adapted from the teacher's xlog package: a minimal Logger interface
// wrapping log.Logger, kept quiet by default so that formatting the
// per-bit trace messages costs nothing unless a caller explicitly turns
// tracing on. The glog package offers much more, but depends on
// flag.Parse() having run, which the lzma package must not assume.
package xtrace

import (
	"log"
	"os"
)

// Level selects which class of messages a Logger accepts.
type Level int

const (
	// Off discards everything.
	Off Level = iota
	// Debug accepts per-bit and per-packet decode traces.
	Debug
)

// Logger is the tracing sink used by the decoder. The zero value is
// Discard: it accepts calls and does nothing, so instrumented code paths
// cost only the (cheap) level comparison when tracing is off.
type Logger struct {
	level Level
	out   *log.Logger
}

// Discard is a Logger that never prints.
var Discard = &Logger{}

// New creates a Logger that writes to stderr at the given level.
func New(level Level) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "lzma: ", log.Lmicroseconds)}
}

// Printf writes a trace message if lvl is at or below the logger's
// configured level.
func (l *Logger) Printf(lvl Level, format string, v ...interface{}) {
	if l == nil || l.out == nil || lvl > l.level {
		return
	}
	l.out.Printf(format, v...)
}
