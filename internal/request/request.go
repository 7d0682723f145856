// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package request provides the HTTP client used to talk to the Telegram Bot
// API.
package request

import (
	"net/http"
	"strings"
	"time"

	"go.astrophena.name/newyearbot/internal/version"
)

// DefaultTimeout bounds a single request. Long polling requests must finish
// well before it.
const DefaultTimeout = time.Minute

// NewClient returns a [http.Client] that identifies itself with
// [version.UserAgent]. A nil base means [http.DefaultTransport].
func NewClient(base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &Transport{Base: base},
	}
}

// Transport is a [http.RoundTripper] that sets the User-Agent header.
type Transport struct {
	Base http.RoundTripper
}

// RoundTrip implements the [http.RoundTripper] interface.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the original request.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	return t.Base.RoundTrip(req)
}

// ScrubError returns err with every secret known to scrubber replaced in its
// message. Bot API request URLs contain the token and [http.Client] quotes
// the URL in its errors, so errors must be scrubbed before they are printed.
// The original error stays reachable with [errors.Unwrap].
func ScrubError(err error, scrubber *strings.Replacer) error {
	if err == nil || scrubber == nil {
		return err
	}
	return &scrubbedError{err: err, scrubber: scrubber}
}

type scrubbedError struct {
	err      error
	scrubber *strings.Replacer
}

func (se *scrubbedError) Error() string {
	return se.scrubber.Replace(se.err.Error())
}

func (se *scrubbedError) Unwrap() error { return se.err }
