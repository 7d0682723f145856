// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger defines a type for writing to logs and helpers for building
// loggers.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// Logf is the basic logger type: a printf-like func. Like [log.Printf], the
// format need not end in a newline. Logf functions must be safe for concurrent
// use.
type Logf func(format string, args ...any)

// Write implements the [io.Writer] interface.
func (f Logf) Write(p []byte) (n int, err error) {
	f("%s", p)
	return len(p), nil
}

// Discard is a Logf that throws away the logs given to it.
func Discard(string, ...any) {}

// New returns a Logf that writes lines to w, each prefixed with the current
// date and time.
func New(w io.Writer) Logf {
	return log.New(&timestampWriter{w: w, now: time.Now}, "", 0).Printf
}

// Scrubbed returns a Logf that replaces secrets in every formatted line using
// r before passing it to logf. If r is nil, logf is returned as is.
func Scrubbed(logf Logf, r *strings.Replacer) Logf {
	if r == nil {
		return logf
	}
	return func(format string, args ...any) {
		logf("%s", r.Replace(fmt.Sprintf(format, args...)))
	}
}

// timestampWriter is an io.Writer that prefixes each line with the current date and time.
type timestampWriter struct {
	w   io.Writer
	now func() time.Time
}

func (tw *timestampWriter) Write(p []byte) (n int, err error) {
	lines := bytes.SplitAfter(p, []byte{'\n'})

	for _, line := range lines {
		if len(line) > 0 {
			timestamp := tw.now().Format(time.DateTime + "\t")
			_, err := tw.w.Write([]byte(timestamp))
			if err != nil {
				return n, err
			}
			nn, err := tw.w.Write(line)
			n += nn
			if err != nil {
				return n, err
			}
		}
	}

	return n, nil
}
