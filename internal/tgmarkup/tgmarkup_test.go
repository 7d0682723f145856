// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgmarkup

import (
	"testing"

	"go.astrophena.name/newyearbot/internal/testutil"
)

func TestFromMarkdown(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   string
		want Message
	}{
		"plain": {
			in:   "hello",
			want: Message{Text: "hello"},
		},
		"bold": {
			in: "**Hello**, world",
			want: Message{
				Text:     "Hello, world",
				Entities: []Entity{{Type: Bold, Offset: 0, Length: 5}},
			},
		},
		"paragraphs and line breaks": {
			in:   "a\nb\n\nc\n",
			want: Message{Text: "a\nb\n\nc"},
		},
		"offsets count UTF-16 code units": {
			in: "🎄 **Дней:** 5",
			want: Message{
				Text:     "🎄 Дней: 5",
				Entities: []Entity{{Type: Bold, Offset: 3, Length: 5}},
			},
		},
		"nested": {
			in: "_italic_ and **bold _nested_**",
			want: Message{
				Text: "italic and bold nested",
				Entities: []Entity{
					{Type: Italic, Offset: 0, Length: 6},
					{Type: Italic, Offset: 16, Length: 6},
					{Type: Bold, Offset: 11, Length: 11},
				},
			},
		},
		"code": {
			in: "run `go test`",
			want: Message{
				Text:     "run go test",
				Entities: []Entity{{Type: Code, Offset: 4, Length: 7}},
			},
		},
		"link": {
			in: "[docs](https://example.com)",
			want: Message{
				Text:     "docs",
				Entities: []Entity{{Type: TextLink, Offset: 0, Length: 4, URL: "https://example.com"}},
			},
		},
		"heading": {
			in: "# Title\n\ntext",
			want: Message{
				Text:     "Title\n\ntext",
				Entities: []Entity{{Type: Bold, Offset: 0, Length: 5}},
			},
		},
		"entity on second paragraph": {
			in: "first\n\n**second**",
			want: Message{
				Text:     "first\n\nsecond",
				Entities: []Entity{{Type: Bold, Offset: 7, Length: 6}},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, FromMarkdown(tc.in), tc.want)
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Илья":          "Илья",
		"**Mallory**":   "Mallory",
		"snake_case":    "snakecase",
		"[x](evil.com)": "xevil.com",
		"Anna-Maria 🎄":  "Anna-Maria 🎄",
	}
	for in, want := range cases {
		testutil.AssertEqual(t, Sanitize(in), want)
	}
}
