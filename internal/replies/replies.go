// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package replies renders localized answers to the bot commands.
//
// Replies are Markdown with **bold** and _italic_ spans. Texts live in the
// embedded locales/active.*.json files and are looked up with go-i18n, so
// Russian day counts get proper plural forms ("1 день", "3 дня", "5 дней").
package replies

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"go.astrophena.name/newyearbot/internal/countdown"
)

//go:embed locales/*.json
var localeFS embed.FS

// ErrUnknownCommand is returned by [Renderer.Render] for commands the bot
// doesn't know.
var ErrUnknownCommand = errors.New("unknown command")

// Command names, in the order they are listed to users.
const (
	cmdStart     = "start"
	cmdDays      = "days"
	cmdCountdown = "countdown"
	cmdProgress  = "progress"
	cmdFacts     = "facts"
	cmdTime      = "time"
	cmdHelp      = "help"
)

var commandNames = []string{cmdStart, cmdDays, cmdCountdown, cmdProgress, cmdFacts, cmdTime, cmdHelp}

// Request is everything a reply depends on.
type Request struct {
	// Now is the reference time. Its location decides when the New Year comes.
	Now time.Time
	// FirstName is the first name of the user, as reported by Telegram.
	FirstName string
	// Language is the IETF language tag of the user, as reported by Telegram.
	// Unsupported or empty values fall back to the default language.
	Language string
}

// Command describes a bot command for the Telegram command menu.
type Command struct {
	Name        string
	Description string
}

// Renderer renders replies. It is safe for concurrent use.
type Renderer struct {
	bundle  *i18n.Bundle
	tags    []language.Tag // default first
	matcher language.Matcher
	facts   []string // overrides the localized facts if not empty

	renderers map[string]renderFunc
}

type renderFunc func(l *localizer, r countdown.Result, req Request) string

// New returns a Renderer that falls back to defaultLang. If facts is not
// empty, /facts picks from it instead of the localized fact table.
func New(defaultLang string, facts []string) (*Renderer, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/active.*.json")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path.Base(file), err)
		}
	}

	loaded := bundle.LanguageTags()
	_, idx, conf := language.NewMatcher(loaded).Match(def)
	if conf == language.No {
		return nil, fmt.Errorf("unsupported default language %q, have %v", defaultLang, loaded)
	}
	tags := []language.Tag{loaded[idx]}
	for i, tag := range loaded {
		if i != idx {
			tags = append(tags, tag)
		}
	}

	r := &Renderer{
		bundle:  bundle,
		tags:    tags,
		matcher: language.NewMatcher(tags),
		facts:   facts,
	}
	r.renderers = map[string]renderFunc{
		cmdStart:     r.renderStart,
		cmdDays:      r.renderDays,
		cmdCountdown: r.renderCountdown,
		cmdProgress:  r.renderProgress,
		cmdFacts:     r.renderFacts,
		cmdTime:      r.renderTime,
		cmdHelp:      r.renderHelp,
	}
	return r, nil
}

// Languages returns the supported languages, the default one first.
func (r *Renderer) Languages() []string {
	langs := make([]string, 0, len(r.tags))
	for _, tag := range r.tags {
		langs = append(langs, tag.String())
	}
	return langs
}

// Commands returns every command with its description in the default
// language.
func (r *Renderer) Commands() []Command { return r.CommandsFor("") }

// CommandsFor is like [Renderer.Commands], but describes commands in lang.
func (r *Renderer) CommandsFor(lang string) []Command {
	l := r.localizer(lang)
	cmds := make([]Command, 0, len(commandNames))
	for _, name := range commandNames {
		cmds = append(cmds, Command{Name: name, Description: l.msg(commandID(name), nil)})
	}
	return cmds
}

// Render returns the reply to cmd in Markdown. The command name may include
// the leading slash.
func (r *Renderer) Render(cmd string, req Request) (string, error) {
	f, ok := r.renderers[strings.TrimPrefix(cmd, "/")]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	l := r.localizer(req.Language)
	text := f(l, countdown.Compute(req.Now), req)
	if l.err != nil {
		return "", fmt.Errorf("rendering %s: %w", cmd, l.err)
	}
	return text, nil
}

func (r *Renderer) match(lang string) language.Tag {
	if lang == "" {
		return r.tags[0]
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return r.tags[0]
	}
	_, idx, conf := r.matcher.Match(tag)
	if conf == language.No {
		return r.tags[0]
	}
	return r.tags[idx]
}

func (r *Renderer) localizer(lang string) *localizer {
	tag := r.match(lang)
	return &localizer{
		l: i18n.NewLocalizer(r.bundle, tag.String()),
		p: message.NewPrinter(tag),
	}
}

// localizer remembers the first lookup error so renderers can be written as
// straight-line code.
type localizer struct {
	l   *i18n.Localizer
	p   *message.Printer
	err error
}

func (l *localizer) localize(lc *i18n.LocalizeConfig) string {
	s, err := l.l.Localize(lc)
	if err != nil && l.err == nil {
		l.err = err
	}
	return s
}

func (l *localizer) msg(id string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// plural returns the form of the message id that agrees with n.
func (l *localizer) plural(id string, n int) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id, PluralCount: n})
}

// number formats n with the digit grouping of the language.
func (l *localizer) number(n int64) string { return l.p.Sprintf("%d", n) }

// percent formats f with one fractional digit.
func (l *localizer) percent(f float64) string { return l.p.Sprintf("%.1f", f) }
