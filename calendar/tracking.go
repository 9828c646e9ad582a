package calendar

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	datetimeLayout = "2006-01-02 15:04:05"
)

// TrackingStatus reports what happened to the duration bookkeeping that
// rides along with an event write. The event itself is recorded either way.
type TrackingStatus string

const (
	TrackingRecorded TrackingStatus = "recorded"
	TrackingSkipped  TrackingStatus = "skipped"
)

// Skip reasons surfaced on CreateResult.
const (
	SkipNoTimes      = "event has no start or end time"
	SkipNoColumn     = "store predates the start_time column"
	SkipBadTimes     = "start or end time is not a valid HH:MM value"
	SkipZeroDuration = "event duration is not positive"
	SkipUnassigned   = "event is not assigned to a partner"
	SkipWriteFailed  = "time entry could not be written"
)

// MinutesBetween computes the whole minutes between two same-day
// wall-clock times on the given date. A negative span clamps to zero.
func MinutesBetween(date, start, end string) (int, error) {
	layout := dateLayout + " " + timeLayout

	startAt, err := time.Parse(layout, date+" "+start)
	if err != nil {
		return 0, fmt.Errorf("parse start time: %w", err)
	}
	endAt, err := time.Parse(layout, date+" "+end)
	if err != nil {
		return 0, fmt.Errorf("parse end time: %w", err)
	}

	minutes := int(endAt.Sub(startAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return minutes, nil
}
