// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package tgmarkup converts Markdown text to Telegram-flavored message markup:
// plain text and a list of entities that describe its formatting.
package tgmarkup

import (
	"strings"
	"unicode/utf16"

	"rsc.io/markdown"
)

// Message represents a Telegram message with text and entities for formatting.
// See https://core.telegram.org/bots/api#message.
type Message struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// Type represents the type of a Telegram message entity.
// See https://core.telegram.org/bots/api#messageentity for a complete list of
// supported types.
type Type string

// Entity types produced by [FromMarkdown].
const (
	URL           Type = "url" // https://telegram.org
	Bold          Type = "bold"
	Italic        Type = "italic"
	Strikethrough Type = "strikethrough"
	Blockquote    Type = "blockquote"
	Code          Type = "code" // monowidth string
	Pre           Type = "pre"  // monowidth block
	TextLink      Type = "text_link"
)

// Entity represents a Telegram message entity. See
// https://core.telegram.org/bots/api#messageentity.
type Entity struct {
	Type Type `json:"type"`
	// Offset in UTF-16 code units to the start of the entity.
	Offset int `json:"offset"`
	// Length of the entity in UTF-16 code units.
	Length int `json:"length"`
	// Optional. For “text_link” only, URL that will be opened after user taps on
	// the text.
	URL string `json:"url,omitempty"`
	// Optional. For “pre” only, the programming language of the entity text.
	Language string `json:"language,omitempty"`
}

// FromMarkdown converts a Markdown text to a [Message].
//
// Blocks are separated by an empty line. Line breaks inside a paragraph are
// preserved. The resulting text has no trailing newline.
func FromMarkdown(text string) Message {
	var p markdown.Parser
	doc := p.Parse(text)

	c := &converter{}
	c.blocks(doc.Blocks, "\n\n")

	return Message{
		Text:     c.sb.String(),
		Entities: c.entities,
	}
}

type converter struct {
	sb       strings.Builder
	entities []Entity
	n        int // length of sb in UTF-16 code units
}

func (c *converter) write(s string) {
	c.sb.WriteString(s)
	c.n += utf16len(s)
}

// wrap records an entity of type typ around everything f writes.
func (c *converter) wrap(typ Type, f func()) *Entity {
	offset := c.n
	f()
	if c.n == offset {
		return nil
	}
	c.entities = append(c.entities, Entity{
		Type:   typ,
		Offset: offset,
		Length: c.n - offset,
	})
	return &c.entities[len(c.entities)-1]
}

func (c *converter) blocks(blocks []markdown.Block, sep string) {
	for i, b := range blocks {
		if i > 0 {
			c.write(sep)
		}
		c.block(b)
	}
}

func (c *converter) block(b markdown.Block) {
	switch block := b.(type) {
	case *markdown.Paragraph:
		c.inlines(block.Text.Inline)
	case *markdown.Heading:
		c.wrap(Bold, func() { c.inlines(block.Text.Inline) })
	case *markdown.Quote:
		c.wrap(Blockquote, func() { c.blocks(block.Blocks, "\n") })
	case *markdown.CodeBlock:
		e := c.wrap(Pre, func() { c.write(strings.Join(block.Text, "\n")) })
		if e != nil && block.Info != "" {
			e.Language = block.Info
		}
	case *markdown.List:
		for i, itemBlock := range block.Items {
			item, ok := itemBlock.(*markdown.Item)
			if !ok {
				continue
			}
			if i > 0 {
				c.write("\n")
			}
			c.blocks(item.Blocks, "\n")
		}
	case *markdown.ThematicBreak:
		c.write("⸻")
	}
}

func (c *converter) inlines(inlines markdown.Inlines) {
	for _, inline := range inlines {
		c.inline(inline)
	}
}

func (c *converter) inline(i markdown.Inline) {
	switch inline := i.(type) {
	case *markdown.Plain:
		c.write(inline.Text)
	case *markdown.Strong:
		c.wrap(Bold, func() { c.inlines(inline.Inner) })
	case *markdown.Emph:
		c.wrap(Italic, func() { c.inlines(inline.Inner) })
	case *markdown.Del:
		c.wrap(Strikethrough, func() { c.inlines(inline.Inner) })
	case *markdown.Link:
		if e := c.wrap(TextLink, func() { c.inlines(inline.Inner) }); e != nil {
			e.URL = inline.URL
		}
	case *markdown.AutoLink:
		c.wrap(URL, func() { c.write(inline.Text) })
	case *markdown.Code:
		c.wrap(Code, func() { c.write(inline.Text) })
	case *markdown.SoftBreak, *markdown.HardBreak:
		c.write("\n")
	}
}

// Sanitize removes characters that have a meaning in Markdown from s, so
// untrusted text such as user names can be embedded into a template without
// changing its formatting.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune("*_`~[]()<>#|\\!", r) {
			return -1
		}
		return r
	}, s)
}

func utf16len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
