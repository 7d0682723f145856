// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package countdown

import "time"

// Clock abstracts time.Now to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements [Clock] using the system wall clock.
type RealClock struct {
	// Location to report time in. If nil, time.Local is used.
	Location *time.Location
}

// Now returns the current time in c.Location.
func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock is a [Clock] that always returns the same time.
type FixedClock time.Time

// Now returns t.
func (t FixedClock) Now() time.Time { return time.Time(t) }
