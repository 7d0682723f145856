// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package replies

import (
	"strconv"
	"strings"
)

// Message IDs of the locale files.
const (
	msgAnonymousName      = "AnonymousName"
	msgStartGreeting      = "StartGreeting"
	msgStartCommandsTitle = "StartCommandsTitle"
	msgStartFooter        = "StartFooter"

	msgDay   = "Day"
	msgMonth = "Month"

	msgDaysCelebration = "DaysCelebration"
	msgDaysOne         = "DaysOne"
	msgDaysFew         = "DaysFew"
	msgDaysSoon        = "DaysSoon"
	msgDaysMany        = "DaysMany"

	msgGreetingMorning   = "GreetingMorning"
	msgGreetingAfternoon = "GreetingAfternoon"
	msgGreetingEvening   = "GreetingEvening"
	msgGreetingNight     = "GreetingNight"

	msgCountdown = "Countdown"
	msgProgress  = "Progress"

	msgSeasonWinter = "SeasonWinter"
	msgSeasonSpring = "SeasonSpring"
	msgSeasonSummer = "SeasonSummer"
	msgSeasonAutumn = "SeasonAutumn"

	msgFacts = "Facts"
	msgTime  = "Time"

	msgHelpTitle  = "HelpTitle"
	msgHelpFooter = "HelpFooter"
)

// builtinFacts is the number of FactN messages in every locale.
const builtinFacts = 10

func factID(i int) string { return "Fact" + strconv.Itoa(i) }

// commandID returns the ID of the short command description shown by /start
// and in the Telegram command menu.
func commandID(name string) string { return "Command" + title(name) }

// helpID returns the ID of the longer command description shown by /help.
func helpID(name string) string { return "Help" + title(name) }

func title(name string) string { return strings.ToUpper(name[:1]) + name[1:] }

// messageIDs returns every message ID that the renderer may look up.
func messageIDs() []string {
	ids := []string{
		msgAnonymousName, msgStartGreeting, msgStartCommandsTitle, msgStartFooter,
		msgDay, msgMonth,
		msgDaysCelebration, msgDaysOne, msgDaysFew, msgDaysSoon, msgDaysMany,
		msgGreetingMorning, msgGreetingAfternoon, msgGreetingEvening, msgGreetingNight,
		msgCountdown, msgProgress,
		msgSeasonWinter, msgSeasonSpring, msgSeasonSummer, msgSeasonAutumn,
		msgFacts, msgTime,
		msgHelpTitle, msgHelpFooter,
	}
	for _, name := range commandNames {
		ids = append(ids, commandID(name))
		if name != cmdStart {
			ids = append(ids, helpID(name))
		}
	}
	for i := range builtinFacts {
		ids = append(ids, factID(i))
	}
	return ids
}
