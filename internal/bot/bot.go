// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package bot connects the reply renderer to Telegram.
//
// Updates are received with long polling. Every command is answered with a
// single text message; failures are only logged, users never see them.
package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"go.astrophena.name/newyearbot/internal/countdown"
	"go.astrophena.name/newyearbot/internal/httplogger"
	"go.astrophena.name/newyearbot/internal/logger"
	"go.astrophena.name/newyearbot/internal/replies"
	"go.astrophena.name/newyearbot/internal/request"
	"go.astrophena.name/newyearbot/internal/syncx"
	"go.astrophena.name/newyearbot/internal/systemd"
)

// DefaultPollTimeout is the long polling timeout used when
// Config.PollTimeout is zero.
const DefaultPollTimeout = 10 * time.Second

// Config configures a [Bot].
type Config struct {
	// Token is the Bot API token. Required.
	Token string
	// APIURL is the Bot API server URL. Empty means https://api.telegram.org.
	APIURL string
	// PollTimeout is the long polling timeout.
	PollTimeout time.Duration
	// Renderer renders replies. Required.
	Renderer *replies.Renderer
	// Clock is read once per update. Nil means the local time.
	Clock countdown.Clock
	// Logf is the logger. Nil means logger.Discard. The token is scrubbed from
	// everything logged.
	Logf logger.Logf
	// HTTPClient is used to make Bot API requests. Nil means a client from
	// request.NewClient.
	HTTPClient *http.Client
	// Verbose logs every Bot API call.
	Verbose bool
	// Notifier, if not nil, is told when polling starts and stops.
	Notifier *systemd.Notifier

	// Offline skips the getMe call in New. For tests.
	Offline bool
	// Synchronous makes update processing block until the handler returns.
	// For tests.
	Synchronous bool
}

var (
	errNoToken    = errors.New("bot: Config.Token is empty")
	errNoRenderer = errors.New("bot: Config.Renderer is nil")
)

// Bot is a Telegram bot answering the New Year countdown commands.
type Bot struct {
	tb       *tele.Bot
	renderer *replies.Renderer
	commands map[string]Handler
	clock    countdown.Clock
	logf     logger.Logf
	scrubber *strings.Replacer
	notifier *systemd.Notifier
	stats    *syncx.Protected[stats]
}

type stats struct {
	started    time.Time // zero if not polling
	lastUpdate time.Time
	handled    int
	failed     int
}

// New creates a Bot. Unless cfg.Offline is set, it checks the token by
// calling getMe.
func New(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errNoToken
	}
	if cfg.Renderer == nil {
		return nil, errNoRenderer
	}
	if cfg.Clock == nil {
		cfg.Clock = countdown.RealClock{}
	}
	if cfg.Logf == nil {
		cfg.Logf = logger.Discard
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}

	b := &Bot{
		renderer: cfg.Renderer,
		commands: commandTable(cfg.Renderer),
		clock:    cfg.Clock,
		scrubber: strings.NewReplacer(cfg.Token, "[EXPUNGED]"),
		notifier: cfg.Notifier,
		stats:    syncx.Protect(stats{}),
	}
	b.logf = logger.Scrubbed(cfg.Logf, b.scrubber)

	var client *http.Client
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		client = &c
	} else {
		client = request.NewClient(nil)
	}
	// getUpdates must not be cut off by the client.
	if client.Timeout != 0 && client.Timeout <= cfg.PollTimeout {
		client.Timeout = cfg.PollTimeout + 10*time.Second
	}
	if cfg.Verbose {
		client.Transport = httplogger.New(client.Transport, b.logf)
	}

	tb, err := tele.NewBot(tele.Settings{
		URL:         cfg.APIURL,
		Token:       cfg.Token,
		Poller:      newPoller(cfg.PollTimeout, b.logf),
		Synchronous: cfg.Synchronous,
		OnError:     b.onError,
		Client:      client,
		Offline:     cfg.Offline,
	})
	if err != nil {
		return nil, request.ScrubError(fmt.Errorf("connecting to Telegram: %w", err), b.scrubber)
	}
	b.tb = tb

	tb.Use(b.logUpdates, b.recoverPanics)
	for name := range b.commands {
		tb.Handle("/"+name, b.handler(name))
	}

	return b, nil
}

// Username returns the username of the bot as reported by getMe. It is empty
// for bots created with Config.Offline.
func (b *Bot) Username() string { return b.tb.Me.Username }

// Run publishes the command list, polls for updates and handles them until
// ctx is canceled. Run must be called at most once.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.publishCommands(); err != nil {
		return request.ScrubError(fmt.Errorf("publishing commands: %w", err), b.scrubber)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.tb.Start()
	}()

	now := time.Now()
	b.stats.Update(func(s *stats) { s.started = now })
	b.logf("Polling for updates as @%s.", b.Username())
	b.notifier.Notify(systemd.Ready, systemd.Status("Polling for updates as @%s", b.Username()))
	go b.notifier.WatchdogLoop(ctx)

	<-ctx.Done()

	b.logf("Stopping polling...")
	b.notifier.Notify(systemd.Stopping)
	b.tb.Stop()
	<-done
	b.stats.Update(func(s *stats) { s.started = time.Time{} })

	return nil
}

// publishCommands sets the command menu for every supported language, and
// for users with other languages in the default one.
func (b *Bot) publishCommands() error {
	for i, lang := range b.renderer.Languages() {
		cmds := teleCommands(b.renderer.CommandsFor(lang))
		if i == 0 {
			if err := b.tb.SetCommands(cmds); err != nil {
				return err
			}
		}
		if err := b.tb.SetCommands(cmds, lang); err != nil {
			return fmt.Errorf("%s: %w", lang, err)
		}
	}
	return nil
}

func teleCommands(cmds []replies.Command) []tele.Command {
	tc := make([]tele.Command, 0, len(cmds))
	for _, c := range cmds {
		tc = append(tc, tele.Command{Text: c.Name, Description: c.Description})
	}
	return tc
}

// Healthy reports whether the bot is polling for updates, for the /health
// endpoint.
func (b *Bot) Healthy() (status string, ok bool) {
	s := b.stats.Load()
	if s.started.IsZero() {
		return "not polling", false
	}
	status = fmt.Sprintf("polling since %s, %d updates handled, %d failed",
		s.started.Format(time.RFC3339), s.handled, s.failed)
	if !s.lastUpdate.IsZero() {
		status += ", last at " + s.lastUpdate.Format(time.RFC3339)
	}
	return status, true
}
