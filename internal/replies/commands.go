// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package replies

import (
	"fmt"
	"strconv"
	"strings"

	"go.astrophena.name/newyearbot/internal/countdown"
	"go.astrophena.name/newyearbot/internal/tgmarkup"
)

const (
	barCells  = 10
	barFilled = "🎁"
	barEmpty  = "🔘"
)

func progressBar(filled int) string {
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, barCells-filled)
}

func (r *Renderer) renderStart(l *localizer, _ countdown.Result, req Request) string {
	name := tgmarkup.Sanitize(strings.TrimSpace(req.FirstName))
	if name == "" {
		name = l.msg(msgAnonymousName, nil)
	}

	var sb strings.Builder
	sb.WriteString(l.msg(msgStartGreeting, map[string]any{"FirstName": name}))
	sb.WriteString("\n\n")
	sb.WriteString(l.msg(msgStartCommandsTitle, nil))
	for _, cmd := range commandNames {
		fmt.Fprintf(&sb, "\n/%s - %s", cmd, l.msg(commandID(cmd), nil))
	}
	sb.WriteString("\n\n")
	sb.WriteString(l.msg(msgStartFooter, nil))
	return sb.String()
}

// daysTier picks the /days phrasing for the number of calendar days left.
func daysTier(days int) string {
	switch {
	case days == 0:
		return msgDaysCelebration
	case days == 1:
		return msgDaysOne
	case days <= 4:
		return msgDaysFew
	case days <= 20:
		return msgDaysSoon
	default:
		return msgDaysMany
	}
}

func greeting(p countdown.PartOfDay) string {
	switch p {
	case countdown.Morning:
		return msgGreetingMorning
	case countdown.Afternoon:
		return msgGreetingAfternoon
	case countdown.Evening:
		return msgGreetingEvening
	default:
		return msgGreetingNight
	}
}

func (r *Renderer) renderDays(l *localizer, res countdown.Result, _ Request) string {
	tier := daysTier(res.CalendarDays)
	if res.NewYearsDay {
		tier = msgDaysCelebration
	}
	text := l.msg(tier, map[string]any{
		"Days":     res.CalendarDays,
		"DaysWord": l.plural(msgDay, res.CalendarDays),
	})
	return text + "\n\n" + l.msg(greeting(res.PartOfDay), nil)
}

func (r *Renderer) renderCountdown(l *localizer, res countdown.Result, _ Request) string {
	return l.msg(msgCountdown, map[string]any{
		"Days":    res.Days,
		"Hours":   res.Hours,
		"Minutes": res.Minutes,
		"Seconds": res.Seconds,
		"Bar":     progressBar(res.ProgressBuckets),
		"Percent": l.percent(res.PercentElapsed),
	})
}

func season(s countdown.Season) string {
	switch s {
	case countdown.Spring:
		return msgSeasonSpring
	case countdown.Summer:
		return msgSeasonSummer
	case countdown.Autumn:
		return msgSeasonAutumn
	default:
		return msgSeasonWinter
	}
}

func (r *Renderer) renderProgress(l *localizer, res countdown.Result, _ Request) string {
	days := res.CalendarDays
	months, rest := days/30, days%30
	return l.msg(msgProgress, map[string]any{
		// Plain digits: a year is not a quantity to group.
		"Year":         strconv.Itoa(res.Reference.Year()),
		"Elapsed":      l.percent(res.PercentElapsed),
		"Remaining":    l.percent(res.PercentRemaining),
		"Season":       l.msg(season(res.Season), nil),
		"YearLength":   res.YearLength,
		"Bar":          progressBar(res.ProgressBuckets),
		"Days":         days,
		"DaysWord":     l.plural(msgDay, days),
		"Months":       months,
		"MonthsWord":   l.plural(msgMonth, months),
		"RestDays":     rest,
		"RestDaysWord": l.plural(msgDay, rest),
	})
}

func (r *Renderer) renderFacts(l *localizer, res countdown.Result, _ Request) string {
	table := r.facts
	if len(table) == 0 {
		table = make([]string, builtinFacts)
		for i := range table {
			table[i] = l.msg(factID(i), nil)
		}
	}
	return l.msg(msgFacts, map[string]any{
		"Fact":     countdown.FactForDay(res.CalendarDays, table),
		"Days":     res.CalendarDays,
		"DaysWord": l.plural(msgDay, res.CalendarDays),
	})
}

func (r *Renderer) renderTime(l *localizer, res countdown.Result, _ Request) string {
	hours, minutes, seconds := countdown.Totals(res.Reference)
	return l.msg(msgTime, map[string]any{
		"Days":    res.CalendarDays,
		"Hours":   l.number(hours),
		"Minutes": l.number(minutes),
		"Seconds": l.number(seconds),
	})
}

func (r *Renderer) renderHelp(l *localizer, _ countdown.Result, _ Request) string {
	var sb strings.Builder
	sb.WriteString(l.msg(msgHelpTitle, nil))
	sb.WriteString("\n")
	for _, cmd := range commandNames {
		if cmd == cmdStart {
			continue
		}
		fmt.Fprintf(&sb, "\n**/%s** - %s", cmd, l.msg(helpID(cmd), nil))
	}
	sb.WriteString("\n\n")
	sb.WriteString(l.msg(msgHelpFooter, nil))
	return sb.String()
}
