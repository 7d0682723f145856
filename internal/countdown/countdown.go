// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package countdown computes how much time is left until the next New Year.
//
// Every function in this package is pure: the result depends only on the
// passed reference time, including its location. Callers obtain "now" from a
// [Clock] once per request and pass it down.
package countdown

import (
	"math"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns the number of days in year: 366 for leap years, 365
// otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// NextTarget returns the New Year midnight that ref counts down to.
//
// If ref is exactly January 1, 00:00:00 in its location, ref itself is
// returned and the countdown is zero. Otherwise the target is January 1,
// 00:00 of the following year in the same location.
func NextTarget(ref time.Time) time.Time {
	if isNewYearMidnight(ref) {
		return ref
	}
	return time.Date(ref.Year()+1, time.January, 1, 0, 0, 0, 0, ref.Location())
}

func isNewYearMidnight(t time.Time) bool {
	return t.Month() == time.January && t.Day() == 1 &&
		t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// Breakdown decomposes the time left until [NextTarget] into days, hours (0-23),
// minutes (0-59) and seconds (0-59). Fractions of a second are dropped.
func Breakdown(ref time.Time) (days, hours, minutes, seconds int) {
	left := secondsUntil(ref)
	days = int(left / secondsPerDay)
	left %= secondsPerDay
	hours = int(left / secondsPerHour)
	left %= secondsPerHour
	minutes = int(left / secondsPerMinute)
	seconds = int(left % secondsPerMinute)
	return days, hours, minutes, seconds
}

// Totals returns the time left until [NextTarget] expressed separately in
// whole hours, whole minutes and whole seconds.
func Totals(ref time.Time) (hours, minutes, seconds int64) {
	s := secondsUntil(ref)
	return s / secondsPerHour, s / secondsPerMinute, s
}

func secondsUntil(ref time.Time) int64 {
	return int64(NextTarget(ref).Sub(ref) / time.Second)
}

// CalendarDaysUntil returns the number of calendar dates between the date of
// ref and the date of [NextTarget]. On December 31 it is 1 regardless of the
// time of day, and on the New Year midnight itself it is 0.
//
// Dates are compared as UTC midnights, so daylight saving transitions in
// ref's location never skew the result.
func CalendarDaysUntil(ref time.Time) int {
	target := NextTarget(ref)
	from := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (secondsPerDay * time.Second))
}

// daysPassed returns how many days of ref's year are considered done.
func daysPassed(ref time.Time) int {
	return DaysInYear(ref.Year()) - CalendarDaysUntil(ref)
}

// PercentOfYearElapsed returns the share of ref's year that has already passed
// and the share that remains, both in percent. They always sum to 100.
//
// At the New Year midnight itself the year that has just ended is reported as
// fully elapsed.
func PercentOfYearElapsed(ref time.Time) (elapsed, remaining float64) {
	length := DaysInYear(ref.Year())
	elapsed = 100 * float64(daysPassed(ref)) / float64(length)
	return elapsed, 100 - elapsed
}

// ProgressBuckets returns how many cells of a ten-cell progress bar should be
// filled for ref. The result is always between 1 and 10.
func ProgressBuckets(ref time.Time) int {
	length := DaysInYear(ref.Year())
	n := int(math.Round(float64(daysPassed(ref)) / float64(length) * 10))
	return min(max(n, 1), 10)
}

// FactForDay picks a fact from table by dayCount. The choice is periodic with
// period len(table). An empty table yields an empty string.
func FactForDay(dayCount int, table []string) string {
	if len(table) == 0 {
		return ""
	}
	i := dayCount % len(table)
	if i < 0 {
		i += len(table)
	}
	return table[i]
}

// Result holds everything known about the countdown at a reference time.
type Result struct {
	Reference time.Time
	Target    time.Time

	// Breakdown of Target - Reference.
	Days    int
	Hours   int
	Minutes int
	Seconds int

	// CalendarDays is the date difference between Reference and Target. It is
	// one more than Days unless Reference falls on midnight.
	CalendarDays int

	YearLength       int
	PercentElapsed   float64
	PercentRemaining float64
	ProgressBuckets  int

	Season    Season
	PartOfDay PartOfDay

	// Celebration is true when Reference is the New Year midnight itself.
	Celebration bool
	// NewYearsDay is true during the whole of January 1. The countdown then
	// already points to the following year, but the holiday is still on.
	NewYearsDay bool
}

// Compute fills a [Result] for ref.
func Compute(ref time.Time) Result {
	r := Result{
		Reference:    ref,
		Target:       NextTarget(ref),
		CalendarDays: CalendarDaysUntil(ref),
		YearLength:   DaysInYear(ref.Year()),
		Season:       SeasonOf(ref.Month()),
		PartOfDay:    PartOfDayOf(ref),
	}
	r.Days, r.Hours, r.Minutes, r.Seconds = Breakdown(ref)
	r.PercentElapsed, r.PercentRemaining = PercentOfYearElapsed(ref)
	r.ProgressBuckets = ProgressBuckets(ref)
	r.Celebration = r.Target.Equal(ref)
	r.NewYearsDay = ref.Month() == time.January && ref.Day() == 1
	return r
}
