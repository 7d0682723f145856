// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package bot

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"

	"go.astrophena.name/newyearbot/internal/logger"
)

const (
	minBackoff = time.Second
	maxBackoff = time.Minute
)

// poller is a long poller that waits before retrying failed getUpdates calls,
// doubling the delay after each consecutive failure. When Telegram asks to
// slow down with retry_after, the poller waits at least that long.
type poller struct {
	timeout    time.Duration
	logf       logger.Logf
	minBackoff time.Duration
	maxBackoff time.Duration
	after      func(time.Duration) <-chan time.Time

	lastID int
}

func newPoller(timeout time.Duration, logf logger.Logf) *poller {
	return &poller{
		timeout:    timeout,
		logf:       logf,
		minBackoff: minBackoff,
		maxBackoff: maxBackoff,
		after:      time.After,
	}
}

// Poll implements [tele.Poller].
func (p *poller) Poll(b *tele.Bot, dest chan tele.Update, stop chan struct{}) {
	backoff := p.minBackoff
	for {
		select {
		case <-stop:
			return
		default:
		}

		updates, err := p.getUpdates(b)
		if err != nil {
			wait := backoff
			var fe tele.FloodError
			if errors.As(err, &fe) {
				wait = max(wait, time.Duration(fe.RetryAfter)*time.Second)
			}
			p.logf("getUpdates failed, retrying in %v: %v", wait, err)
			select {
			case <-stop:
				return
			case <-p.after(wait):
			}
			backoff = min(backoff*2, p.maxBackoff)
			continue
		}
		backoff = p.minBackoff

		for _, u := range updates {
			p.lastID = u.ID
			select {
			case dest <- u:
			case <-stop:
				return
			}
		}
	}
}

func (p *poller) getUpdates(b *tele.Bot) ([]tele.Update, error) {
	params := map[string]string{
		"offset":          strconv.Itoa(p.lastID + 1),
		"timeout":         strconv.Itoa(int(p.timeout / time.Second)),
		"allowed_updates": `["message"]`,
	}
	data, err := b.Raw("getUpdates", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []tele.Update `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}
