// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"sync"
	"testing"
	"time"

	"go.astrophena.name/newyearbot/internal/testutil"
)

func TestProtected(t *testing.T) {
	t.Parallel()

	type stats struct {
		Handled  int
		LastSeen time.Time
	}

	p := Protect(stats{})
	seen := time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Update(func(s *stats) {
				s.Handled++
				s.LastSeen = seen
			})
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, p.Load(), stats{Handled: 100, LastSeen: seen})
}

func TestLazy(t *testing.T) {
	t.Parallel()

	var (
		l     Lazy[string]
		calls int
	)
	f := func() string {
		calls++
		return "computed"
	}

	testutil.AssertEqual(t, l.Get(f), "computed")
	testutil.AssertEqual(t, l.Get(f), "computed")
	testutil.AssertEqual(t, calls, 1)
}
