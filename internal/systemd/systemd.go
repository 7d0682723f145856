// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package systemd enables the bot to signal readiness, report its status and
// update the watchdog timestamp when it runs as a systemd service.
package systemd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"go.astrophena.name/newyearbot/internal/logger"
)

// State defines a sd-notify protocol state.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
type State string

const (
	// Ready tells the service manager that service startup is
	// finished, or the service finished loading its configuration.
	Ready State = "READY=1"
	// Stopping tells the service manager that the service is beginning its
	// shutdown.
	Stopping State = "STOPPING=1"
	// Watchdog tells the service manager to update the watchdog timestamp.
	Watchdog State = "WATCHDOG=1"
)

// Status returns a state that describes the service state for humans, shown
// by systemctl status.
func Status(format string, args ...any) State {
	// Status is a single line.
	s := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " ")
	return State("STATUS=" + s)
}

// Notifier sends notifications to systemd. The zero value and a Notifier
// created outside of systemd do nothing.
type Notifier struct {
	socket   string
	watchdog string
	logf     logger.Logf
}

// NewNotifier returns a Notifier configured from the NOTIFY_SOCKET and
// WATCHDOG_USEC environment variables looked up with getenv. Errors are logged
// to logf.
func NewNotifier(getenv func(string) string, logf logger.Logf) *Notifier {
	return &Notifier{
		socket:   getenv("NOTIFY_SOCKET"),
		watchdog: getenv("WATCHDOG_USEC"),
		logf:     logf,
	}
}

// Enabled reports whether the service runs under systemd with notification
// support.
func (n *Notifier) Enabled() bool { return n != nil && n.socket != "" }

// Notify sends states to systemd in a single message.
func (n *Notifier) Notify(states ...State) {
	if !n.Enabled() || len(states) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range states {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(s))
	}

	addr := &net.UnixAddr{Net: "unixgram", Name: n.socket}
	conn, err := net.DialUnix(addr.Net, nil, addr)
	if err != nil {
		n.logf("systemd: failed when notifying: %v", err)
		return
	}
	defer conn.Close()

	if _, err = conn.Write([]byte(sb.String())); err != nil {
		n.logf("systemd: failed when notifying: %v", err)
	}
}

// WatchdogLoop periodically updates systemd watchdog timestamp until ctx is
// canceled. It does nothing if the watchdog is not enabled for the service.
func (n *Notifier) WatchdogLoop(ctx context.Context) {
	if !n.Enabled() || n.watchdog == "" {
		return
	}

	interval, err := watchdogInterval(n.watchdog)
	if err != nil {
		n.logf("%v", err)
		return
	}

	// Notify twice per interval, as sd_watchdog_enabled(3) recommends.
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.Notify(Watchdog)
		case <-ctx.Done():
			return
		}
	}
}

func watchdogInterval(usec string) (time.Duration, error) {
	s, err := strconv.Atoi(usec)
	if err != nil {
		return 0, fmt.Errorf("systemd: error converting WATCHDOG_USEC: %w", err)
	}
	if s <= 0 {
		return 0, errors.New("systemd: error WATCHDOG_USEC must be a positive number")
	}
	return time.Duration(s) * time.Microsecond, nil
}
