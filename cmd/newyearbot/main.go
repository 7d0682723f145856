// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"go.astrophena.name/newyearbot/internal/bot"
	"go.astrophena.name/newyearbot/internal/cli"
	"go.astrophena.name/newyearbot/internal/cli/envflag"
	"go.astrophena.name/newyearbot/internal/countdown"
	"go.astrophena.name/newyearbot/internal/facts"
	"go.astrophena.name/newyearbot/internal/logger"
	"go.astrophena.name/newyearbot/internal/replies"
	"go.astrophena.name/newyearbot/internal/systemd"
	"go.astrophena.name/newyearbot/internal/version"
	"go.astrophena.name/newyearbot/internal/web"
)

func main() { cli.Main(new(engine)) }

var errNoToken = fmt.Errorf("%w: BOT_TOKEN is not set, get a token from @BotFather and pass it with -token flag or BOT_TOKEN environment variable", cli.ErrInvalidArgs)

type engine struct {
	// flags
	token       *string
	lang        *string
	tz          *string
	factsFile   *string
	addr        *string
	apiURL      *string
	pollTimeout *time.Duration
	verbose     *bool

	dotenvErr error // reported by Run

	// for tests
	dotenvPath string           // defaults to .env
	httpc      *http.Client     // used for Bot API requests
	clock      countdown.Clock  // overrides the clock in the -tz location
	ready      func(net.Addr)   // see web.ListenAndServeConfig.Ready
	started    func(b *bot.Bot) // called after the bot is created
}

func (e *engine) Flags(fs *flag.FlagSet, env *cli.Env) {
	getenv := e.getenv(env)

	e.token = envflag.Value(fs, getenv, "token", "", "Telegram Bot API `token`.", "BOT_TOKEN", "TG_TOKEN")
	e.lang = envflag.Value(fs, getenv, "lang", "ru", "Default reply `language`.", "BOT_LANG")
	e.tz = envflag.Value(fs, getenv, "tz", "", "Time `zone` in which the New Year comes. Local time if empty.", "TZ_NAME")
	e.factsFile = envflag.Value(fs, getenv, "facts", "", "Starlark `file` with facts to use instead of built-in ones.", "FACTS_FILE")
	e.addr = envflag.Value(fs, getenv, "addr", "", "Listen on `host:port` and serve the /health endpoint. Disabled if empty.", "ADDR")
	if *e.addr == "" {
		if port := getenv("PORT"); port != "" {
			*e.addr = ":" + port
		}
	}
	e.apiURL = envflag.Value(fs, getenv, "api-url", "", "Bot API server `URL`. Official one if empty.", "BOT_API_URL")
	e.pollTimeout = envflag.Value(fs, getenv, "poll-timeout", bot.DefaultPollTimeout, "Long polling `timeout`.", "POLL_TIMEOUT")
	e.verbose = envflag.Value(fs, getenv, "verbose", false, "Log every Bot API call.", "VERBOSE")
}

// getenv returns a function that looks up environment variables in env,
// falling back to the .env file.
func (e *engine) getenv(env *cli.Env) func(string) string {
	path := e.dotenvPath
	if path == "" {
		path = ".env"
	}
	dotenv, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.dotenvErr = fmt.Errorf("reading %s: %w", path, err)
	}
	return func(name string) string {
		if v := env.Lookup(name); v != "" {
			return v
		}
		return dotenv[name]
	}
}

func (e *engine) Run(ctx context.Context, env *cli.Env) error {
	if e.dotenvErr != nil {
		return e.dotenvErr
	}
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrInvalidArgs, env.Args)
	}
	if *e.token == "" {
		return errNoToken
	}

	loc := time.Local
	if *e.tz != "" {
		var err error
		loc, err = time.LoadLocation(*e.tz)
		if err != nil {
			return fmt.Errorf("%w: unknown time zone %q", cli.ErrInvalidArgs, *e.tz)
		}
	}
	clock := e.clock
	if clock == nil {
		clock = countdown.RealClock{Location: loc}
	}

	scrubber := strings.NewReplacer(*e.token, "[EXPUNGED]")
	logf := logger.Scrubbed(logger.New(env.Stderr), scrubber)

	var factList []string
	if *e.factsFile != "" {
		var err error
		factList, err = facts.LoadFile(*e.factsFile, logf)
		if err != nil {
			return fmt.Errorf("%w: loading facts: %w", cli.ErrInvalidArgs, err)
		}
		logf("Loaded %d facts from %s.", len(factList), *e.factsFile)
	}

	renderer, err := replies.New(*e.lang, factList)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
	}

	logf("Starting %s in %s time zone.", version.Version(), loc)

	b, err := bot.New(bot.Config{
		Token:       *e.token,
		APIURL:      *e.apiURL,
		PollTimeout: *e.pollTimeout,
		Renderer:    renderer,
		Clock:       clock,
		Logf:        logf,
		HTTPClient:  e.httpc,
		Verbose:     *e.verbose,
		Notifier:    systemd.NewNotifier(env.Getenv, logf),
	})
	if err != nil {
		return err
	}
	if e.started != nil {
		e.started(b)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Run(ctx) })
	if *e.addr != "" {
		mux := http.NewServeMux()
		web.Health(mux).RegisterFunc("bot", b.Healthy)
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			web.RespondJSON(w, struct {
				Bot     string       `json:"bot"`
				Version version.Info `json:"version"`
			}{
				Bot:     "@" + b.Username(),
				Version: version.Version(),
			})
		})
		g.Go(func() error {
			return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
				Addr:  *e.addr,
				Mux:   mux,
				Logf:  logf,
				Ready: e.ready,
			})
		})
	}
	return g.Wait()
}
