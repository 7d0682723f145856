// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.astrophena.name/newyearbot/internal/testutil"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		checks       map[string]HealthFunc
		wantResponse HealthResponse
		wantStatus   int
	}{
		"no checks": {
			wantResponse: HealthResponse{
				OK:     true,
				Checks: map[string]CheckResponse{},
			},
			wantStatus: http.StatusOK,
		},
		"check that always returns ok": {
			checks: map[string]HealthFunc{
				"always-ok": func() (string, bool) { return "this check always returns ok", true },
			},
			wantResponse: HealthResponse{
				OK: true,
				Checks: map[string]CheckResponse{
					"always-ok": {OK: true, Status: "this check always returns ok"},
				},
			},
			wantStatus: http.StatusOK,
		},
		"two checks, one failing": {
			checks: map[string]HealthFunc{
				"ok":     func() (string, bool) { return "ok", true },
				"not-ok": func() (string, bool) { return "not ok", false },
			},
			wantResponse: HealthResponse{
				OK: false,
				Checks: map[string]CheckResponse{
					"ok":     {OK: true, Status: "ok"},
					"not-ok": {OK: false, Status: "not ok"},
				},
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			h := Health(mux)
			for name, f := range tc.checks {
				h.RegisterFunc(name, f)
			}

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			testutil.AssertEqual(t, w.Code, tc.wantStatus)
			testutil.AssertEqual(t, w.Header().Get("Content-Type"), "application/json")
			testutil.AssertEqual(t, testutil.UnmarshalJSON[HealthResponse](t, w.Body.Bytes()), tc.wantResponse)
		})
	}
}

func TestHealthReturnsSameHandler(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	if Health(mux) != Health(mux) {
		t.Fatal("Health must return the already registered handler")
	}
}

func TestHealthDuplicateCheck(t *testing.T) {
	t.Parallel()

	h := Health(http.NewServeMux())
	h.RegisterFunc("bot", func() (string, bool) { return "", true })

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("RegisterFunc must panic on duplicate names")
		}
	}()
	h.RegisterFunc("bot", func() (string, bool) { return "", true })
}
