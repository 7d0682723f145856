// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httplogger provides a http.RoundTripper middleware that logs Bot API
// calls.
//
// Each finished request is logged with its method, the last element of its
// path (the Bot API method name), the response status or error and the time
// it took. Calls that are still in flight are drawn as a column of bars, so
// a long poll that overlaps with sendMessage calls is easy to spot.
package httplogger

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"go.astrophena.name/newyearbot/internal/logger"
)

// New creates a new http.RoundTripper that logs information about requests
// made through t. A nil t means [http.DefaultTransport].
func New(t http.RoundTripper, logf logger.Logf) http.RoundTripper {
	if t == nil {
		t = http.DefaultTransport
	}
	return &loggingTransport{transport: t, logf: logf, now: time.Now}
}

type loggingTransport struct {
	transport http.RoundTripper
	logf      logger.Logf
	now       func() time.Time

	mu     sync.Mutex
	active []byte
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.mu.Lock()
	index := len(t.active)
	start := t.now()
	t.active = append(t.active, '|')
	t.mu.Unlock()

	resp, err := t.transport.RoundTrip(r)

	display := r.Method + " " + method(r)
	if resp != nil {
		display += " " + resp.Status
	}
	if err != nil {
		display += " error: " + err.Error()
	}
	elapsed := t.now().Sub(start)

	t.mu.Lock()
	t.active[index] = '-'
	t.logf("HTTP: %s %s (%.3fs)", t.active, display, elapsed.Seconds())
	t.active[index] = ' '
	n := len(t.active)
	for n > 0 && t.active[n-1] == ' ' {
		n--
	}
	t.active = t.active[:n]
	t.mu.Unlock()

	return resp, err
}

// method returns the last element of the request path, which is the method
// name for Bot API calls. The token is part of an earlier element and is never
// included.
func method(r *http.Request) string {
	p := r.URL.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}
