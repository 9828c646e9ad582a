package services

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"uandme/calendar"
)

const (
	icsDateLayout     = "2006-01-02"
	icsDatetimeLayout = "2006-01-02 15:04"
)

// BuildICS renders a household's events as an iCalendar feed. Events
// with a start time become timed entries interpreted in their stored
// timezone; events without one are exported all-day. Events whose date
// cannot be parsed are left out of the feed.
func BuildICS(events []calendar.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//uandme//household calendar//EN")

	stamp := time.Now()
	for _, ev := range events {
		loc := locationFor(ev.Timezone)

		var (
			startAt time.Time
			endAt   time.Time
			allDay  bool
		)
		if start := ev.SortTime(); start != "" {
			var err error
			startAt, err = time.ParseInLocation(icsDatetimeLayout, ev.Date+" "+start, loc)
			if err != nil {
				continue
			}
			if ev.EndTime != "" {
				if end, err := time.ParseInLocation(icsDatetimeLayout, ev.Date+" "+ev.EndTime, loc); err == nil && end.After(startAt) {
					endAt = end
				}
			}
		} else {
			day, err := time.ParseInLocation(icsDateLayout, ev.Date, loc)
			if err != nil {
				continue
			}
			startAt = day
			allDay = true
		}

		ve := cal.AddEvent(fmt.Sprintf("event-%d@uandme", ev.ID))
		ve.SetDtStampTime(stamp)
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Category != "" {
			ve.AddProperty(ics.ComponentPropertyCategories, ev.Category)
		}

		if allDay {
			ve.SetAllDayStartAt(startAt)
		} else {
			ve.SetStartAt(startAt)
			if !endAt.IsZero() {
				ve.SetEndAt(endAt)
			}
		}
	}

	return cal.Serialize()
}

func locationFor(label string) *time.Location {
	if label == "" {
		label = calendar.DefaultTimezone
	}
	loc, err := time.LoadLocation(label)
	if err != nil {
		return time.UTC
	}
	return loc
}
