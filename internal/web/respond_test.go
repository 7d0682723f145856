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

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	obj := struct {
		Name string `json:"name"`
		Days int    `json:"days"`
	}{Name: "newyearbot", Days: 5}

	w := httptest.NewRecorder()
	RespondJSON(w, obj)

	testutil.AssertEqual(t, w.Code, http.StatusOK)
	testutil.AssertEqual(t, w.Header().Get("Content-Type"), "application/json")
	testutil.AssertEqual(t, w.Body.String(), "{\n  \"name\": \"newyearbot\",\n  \"days\": 5\n}\n")
}

func TestRespondJSONInvalid(t *testing.T) {
	t.Parallel()

	// A cyclic object can't be marshaled by encoding/json.
	type Node struct {
		Name string `json:"name"`
		Next *Node  `json:"next"`
	}
	n1 := Node{Name: "111"}
	n2 := Node{Name: "222", Next: &n1}
	n1.Next = &n2

	w := httptest.NewRecorder()
	RespondJSONStatus(w, http.StatusTeapot, n1)

	testutil.AssertEqual(t, w.Code, http.StatusInternalServerError)
	errResp := testutil.UnmarshalJSON[errorResponse](t, w.Body.Bytes())
	testutil.AssertEqual(t, errResp.Status, "error")
	testutil.AssertSubstring(t, errResp.Error, "JSON marshal error: json: unsupported value: encountered a cycle")
}

func TestEscapeForJSON(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   string
		want string
	}{
		"empty string":     {in: "", want: ""},
		"basic string":     {in: "Hello, world!", want: "Hello, world!"},
		"escape backslash": {in: `a \ b`, want: `a \\ b`},
		"escape quotes":    {in: `He said "hi"`, want: `He said \"hi\"`},
		"escape tab":       {in: "a\tb", want: `a\tb`},
		"escape newline":   {in: "a\nb", want: `a\nb`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, escapeForJSON(tc.in), tc.want)
		})
	}
}
