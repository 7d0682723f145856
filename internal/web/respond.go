// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// errorResponse is a struct used to represent an error response in JSON format.
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// RespondJSON marshals the provided response object as JSON and writes it to
// the [http.ResponseWriter] with the 200 status code.
// In case of marshalling errors, it writes an internal server error with the error message.
func RespondJSON(w http.ResponseWriter, response any) {
	RespondJSONStatus(w, http.StatusOK, response)
}

// RespondJSONStatus is like [RespondJSON], but writes the given status code.
func RespondJSONStatus(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{
  "status": "error",
  "error": "JSON marshal error: %s"
}
`, escapeForJSON(err.Error()))
		return
	}
	w.WriteHeader(status)
	w.Write(b)
	w.Write([]byte("\n"))
}

func escapeForJSON(s string) string {
	var sb strings.Builder
	for _, ch := range s {
		switch ch {
		case '\\', '"', '/':
			sb.WriteRune('\\')
			sb.WriteRune(ch)
		case '\b':
			sb.WriteString(`\b`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}
