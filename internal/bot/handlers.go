// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package bot

import (
	"fmt"
	"runtime/debug"
	"time"

	tele "gopkg.in/telebot.v4"

	"go.astrophena.name/newyearbot/internal/replies"
	"go.astrophena.name/newyearbot/internal/request"
	"go.astrophena.name/newyearbot/internal/tgmarkup"
)

// Handler turns a request into a Markdown reply.
type Handler func(replies.Request) (string, error)

// commandTable maps every command name to its handler.
func commandTable(r *replies.Renderer) map[string]Handler {
	table := make(map[string]Handler)
	for _, cmd := range r.Commands() {
		name := cmd.Name
		table[name] = func(req replies.Request) (string, error) {
			return r.Render(name, req)
		}
	}
	return table
}

func (b *Bot) handler(name string) tele.HandlerFunc {
	h := b.commands[name]
	return func(c tele.Context) error {
		req := replies.Request{Now: b.clock.Now()}
		if u := c.Sender(); u != nil {
			req.FirstName = u.FirstName
			req.Language = u.LanguageCode
		}

		text, err := h(req)
		if err != nil {
			return fmt.Errorf("rendering /%s: %w", name, err)
		}

		msg := tgmarkup.FromMarkdown(text)
		if err := c.Send(msg.Text, teleEntities(msg.Entities), tele.NoPreview); err != nil {
			return fmt.Errorf("replying to /%s: %w", name, err)
		}
		return nil
	}
}

func teleEntities(ents []tgmarkup.Entity) tele.Entities {
	if len(ents) == 0 {
		return nil
	}
	te := make(tele.Entities, 0, len(ents))
	for _, e := range ents {
		te = append(te, tele.MessageEntity{
			Type:     tele.EntityType(e.Type),
			Offset:   e.Offset,
			Length:   e.Length,
			URL:      e.URL,
			Language: e.Language,
		})
	}
	return te
}

// logUpdates logs every handled update with the time spent on it.
func (b *Bot) logUpdates(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		err := next(c)

		var userID, chatID int64
		if u := c.Sender(); u != nil {
			userID = u.ID
		}
		if ch := c.Chat(); ch != nil {
			chatID = ch.ID
		}
		b.logf("Update %d: %q from user %d in chat %d handled in %v.",
			c.Update().ID, c.Text(), userID, chatID, time.Since(start).Round(time.Millisecond))

		b.stats.Update(func(s *stats) {
			s.lastUpdate = start
			s.handled++
			if err != nil {
				s.failed++
			}
		})
		return err
	}
}

// recoverPanics turns a panic in a handler into an error, so that one bad
// update doesn't crash the bot.
func (b *Bot) recoverPanics(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			}
		}()
		return next(c)
	}
}

// onError logs errors returned by handlers and telebot itself. c is nil for
// errors not related to an update.
func (b *Bot) onError(err error, c tele.Context) {
	err = request.ScrubError(err, b.scrubber)
	if c == nil {
		b.logf("Error: %v", err)
		return
	}
	b.logf("Error handling update %d: %v", c.Update().ID, err)
}
