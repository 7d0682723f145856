// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package countdown

import "time"

// Season is a meteorological season of the northern hemisphere.
type Season int

// Seasons.
const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

var seasonNames = [...]string{
	Winter: "winter",
	Spring: "spring",
	Summer: "summer",
	Autumn: "autumn",
}

// String implements the [fmt.Stringer] interface.
func (s Season) String() string {
	if s < 0 || int(s) >= len(seasonNames) {
		return "unknown"
	}
	return seasonNames[s]
}

// SeasonOf returns the season month belongs to.
func SeasonOf(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// PartOfDay is a coarse time of day used to pick a greeting.
type PartOfDay int

// Parts of day.
const (
	Night PartOfDay = iota
	Morning
	Afternoon
	Evening
)

var partOfDayNames = [...]string{
	Night:     "night",
	Morning:   "morning",
	Afternoon: "afternoon",
	Evening:   "evening",
}

// String implements the [fmt.Stringer] interface.
func (p PartOfDay) String() string {
	if p < 0 || int(p) >= len(partOfDayNames) {
		return "unknown"
	}
	return partOfDayNames[p]
}

// PartOfDayOf returns the part of day for t: morning from 6 to 12, afternoon
// from 12 to 18, evening from 18 to 23 and night otherwise.
func PartOfDayOf(t time.Time) PartOfDay {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 18:
		return Afternoon
	case h >= 18 && h < 23:
		return Evening
	default:
		return Night
	}
}
