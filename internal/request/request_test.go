// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.astrophena.name/newyearbot/internal/testutil"
	"go.astrophena.name/newyearbot/internal/version"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClientUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, err := NewClient(nil).Get(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	testutil.AssertEqual(t, gotUA, version.UserAgent())
}

func TestTransportKeepsOriginalRequest(t *testing.T) {
	t.Parallel()

	tr := &Transport{Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})}
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, req.Header.Get("User-Agent"), "")
}

func TestScrubError(t *testing.T) {
	t.Parallel()

	const token = "123456:SECRET"
	scrubber := strings.NewReplacer(token, "[EXPUNGED]")

	failing := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	c := NewClient(failing)
	_, err := c.Post("https://api.telegram.org/bot"+token+"/getMe", "application/json", nil)
	if err == nil {
		t.Fatal("want error")
	}
	// http.Client quotes the URL, token included.
	testutil.AssertSubstring(t, err.Error(), token)

	scrubbed := ScrubError(err, scrubber)
	if strings.Contains(scrubbed.Error(), token) {
		t.Fatalf("token leaked into error: %v", scrubbed)
	}
	testutil.AssertSubstring(t, scrubbed.Error(), "bot[EXPUNGED]/getMe")
	if !errors.Is(scrubbed, err) {
		t.Fatal("scrubbed error must wrap the original one")
	}

	testutil.AssertEqual(t, ScrubError(nil, scrubber), nil)
	if ScrubError(err, nil) != err {
		t.Fatal("nil scrubber must return the error as is")
	}
}
