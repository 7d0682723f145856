// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Newyearbot is a Telegram bot that counts down to the New Year.

# Usage

	$ newyearbot [flags...]

The bot receives updates with long polling and answers these commands:

  - /start: greeting and the list of commands.
  - /days: days left until the New Year.
  - /countdown: days, hours, minutes and seconds left, and the year progress.
  - /progress: how much of the year has passed, with the current season.
  - /facts: a New Year fact that changes every day.
  - /time: time left in hours, minutes and seconds.
  - /help: description of every command.

Replies are in Russian or English, chosen by the language of the user's
Telegram client. Users with other languages get replies in the default
language set by the -lang flag.

# Environment Variables

Every flag can be set by an environment variable:

  - BOT_TOKEN (or TG_TOKEN): Telegram Bot API token, required.
  - BOT_LANG: default reply language, "ru" or "en".
  - TZ_NAME: IANA time zone name, like "Europe/Moscow", that decides when the
    New Year comes. System local time is used when it's empty.
  - FACTS_FILE: path to a Starlark file overriding the facts.
  - ADDR (or PORT): address of the HTTP server with the /health endpoint.
    PORT is a port number, as set by hosting platforms like Render.
  - BOT_API_URL: URL of a self-hosted Bot API server.
  - POLL_TIMEOUT: long polling timeout, like "30s".
  - VERBOSE: log every Bot API call when "true".

Variables can also be put into the .env file in the working directory.
Variables set in the environment take precedence over ones from the file.

# Facts

By default /facts shows one of the ten built-in facts in the language of the
user. They can be replaced by a Starlark file that defines a list of strings:

	facts = [
	    "The first New Year tree in Russia was set up by Peter the Great.",
	    "Ded Moroz lives in Veliky Ustyug.",
	]

Facts from the file are shown regardless of the user's language. The file can
use print for debugging, its output goes to the log.

# systemd

When started by systemd with Type=notify, the bot reports readiness once it
starts polling, and updates the watchdog timestamp if WatchdogSec is set.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/newyearbot/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
