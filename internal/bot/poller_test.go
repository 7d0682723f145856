// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package bot

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"

	"go.astrophena.name/newyearbot/internal/testutil"
)

func TestPollerBacksOff(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.failUpdates = 3
	api.updates = []json.RawMessage{updateJSON(5, "/days", "en")}

	tb, err := tele.NewBot(tele.Settings{
		Token:   testToken,
		Client:  api.client(),
		Offline: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	lb := new(logBuffer)
	p := newPoller(time.Second, lb.logf)
	p.minBackoff = time.Millisecond
	p.maxBackoff = 3 * time.Millisecond

	dest := make(chan tele.Update, 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Poll(tb, dest, stop)
	}()

	select {
	case u := <-dest:
		testutil.AssertEqual(t, u.ID, 5)
		testutil.AssertEqual(t, u.Message.Text, "/days")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an update")
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller didn't stop")
	}

	logs := lb.String()
	testutil.AssertSubstring(t, logs, "retrying in 1ms")
	testutil.AssertSubstring(t, logs, "retrying in 2ms")
	testutil.AssertSubstring(t, logs, "retrying in 3ms")

	api.mu.Lock()
	defer api.mu.Unlock()
	for _, off := range api.offsets[:4] {
		testutil.AssertEqual(t, off, "1")
	}
	if len(api.offsets) > 4 {
		testutil.AssertEqual(t, api.offsets[4], "6")
	}
}

func TestPollerHonorsRetryAfter(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.floodUpdates = 1
	api.failUpdates = 1
	api.updates = []json.RawMessage{updateJSON(8, "/time", "ru")}

	tb, err := tele.NewBot(tele.Settings{
		Token:   testToken,
		Client:  api.client(),
		Offline: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var (
		mu    sync.Mutex
		waits []time.Duration
	)
	p := newPoller(time.Second, new(logBuffer).logf)
	p.after = func(d time.Duration) <-chan time.Time {
		mu.Lock()
		waits = append(waits, d)
		mu.Unlock()
		c := make(chan time.Time, 1)
		c <- time.Time{}
		return c
	}

	dest := make(chan tele.Update, 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Poll(tb, dest, stop)
	}()

	select {
	case u := <-dest:
		testutil.AssertEqual(t, u.ID, 8)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an update")
	}
	close(stop)
	<-done

	mu.Lock()
	defer mu.Unlock()
	// retry_after wins over the shorter backoff, and the backoff keeps
	// doubling for the next failure.
	testutil.AssertEqual(t, waits, []time.Duration{7 * time.Second, 2 * time.Second})
}
