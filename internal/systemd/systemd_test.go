// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package systemd

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.astrophena.name/newyearbot/internal/testutil"
)

func listen(t *testing.T) (*net.UnixConn, string) {
	t.Helper()
	// Unix socket paths are short, t.TempDir may be too long on some systems.
	dir, err := os.MkdirTemp("", "sd")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "notify.sock")

	l, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		t.Fatalf("Failed to listen on unixgram socket: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func read(t *testing.T, l *net.UnixConn) string {
	t.Helper()
	l.SetReadDeadline(time.Now().Add(5 * time.Second))
	buf := make([]byte, 512)
	n, _, err := l.ReadFromUnix(buf)
	if err != nil {
		t.Fatalf("Failed to read from unixgram socket: %v", err)
	}
	return string(buf[:n])
}

func env(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestNotify(t *testing.T) {
	t.Parallel()

	l, path := listen(t)
	n := NewNotifier(env(map[string]string{"NOTIFY_SOCKET": path}), t.Logf)
	testutil.AssertEqual(t, n.Enabled(), true)

	n.Notify(Ready, Status("Polling as @newyearbot\nsince today"))
	testutil.AssertEqual(t, read(t, l), "READY=1\nSTATUS=Polling as @newyearbot since today")

	n.Notify(Stopping)
	testutil.AssertEqual(t, read(t, l), "STOPPING=1")
}

func TestNotifyDisabled(t *testing.T) {
	t.Parallel()

	n := NewNotifier(env(nil), func(format string, args ...any) {
		t.Errorf("unexpected log: "+format, args...)
	})
	testutil.AssertEqual(t, n.Enabled(), false)
	n.Notify(Ready)
	n.WatchdogLoop(t.Context()) // returns immediately

	var nilNotifier *Notifier
	testutil.AssertEqual(t, nilNotifier.Enabled(), false)
	nilNotifier.Notify(Ready)
}

func TestWatchdogLoop(t *testing.T) {
	t.Parallel()

	l, path := listen(t)
	n := NewNotifier(env(map[string]string{
		"NOTIFY_SOCKET": path,
		"WATCHDOG_USEC": "250000", // 0.25 second
	}), t.Logf)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.WatchdogLoop(ctx)
	}()

	testutil.AssertEqual(t, read(t, l), "WATCHDOG=1")
	cancel()
	<-done
}

func TestWatchdogInterval(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		"valid":    {in: "30000000", want: 30 * time.Second},
		"garbage":  {in: "soon", wantErr: true},
		"zero":     {in: "0", wantErr: true},
		"negative": {in: "-5", wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := watchdogInterval(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("watchdogInterval(%q): got error %v, want error %v", tc.in, err, tc.wantErr)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}
