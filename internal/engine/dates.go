package engine

import "time"

// DateLayout is the calendar-day key used throughout the snapshot maps.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate interprets a YYYY-MM-DD key as local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func prevDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}
