package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidClock marks a wall-clock string that none of the accepted layouts parse.
var ErrInvalidClock = errors.New("invalid wall-clock time")

// ClockLayout is the display layout for one endpoint: numeric hour, 2-digit minute, AM/PM.
const ClockLayout = "3:04 PM"

// RangeSeparator joins the two endpoints of a formatted range.
const RangeSeparator = " - "

// Accepted input layouts: 24-hour "HH:MM", database TIME "HH:MM:SS", and the
// already formatted 12-hour forms the backend echoes back.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	ClockLayout,
	"3:04PM",
}

// ParseClock parses a wall-clock string into a date-independent time on the zero date.
func ParseClock(raw string) (time.Time, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
}

// FormatClock renders one endpoint, e.g. "08:00" -> "8:00 AM".
func FormatClock(raw string) (string, error) {
	t, err := ParseClock(raw)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// FormatTimeRange renders a start/end pair as "8:00 AM - 12:00 PM". The result is a
// pure function of the inputs so it can be compared against facet option strings.
func FormatTimeRange(start, end string) (string, error) {
	from, err := FormatClock(start)
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	to, err := FormatClock(end)
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	return from + RangeSeparator + to, nil
}

// TimeRange builds an Accessor that formats a start/end pair. Records whose times do
// not parse report a missing value so they neither match a time filter nor add an option.
func TimeRange[T any](start, end func(T) string) Accessor[T] {
	return func(record T) (string, bool) {
		formatted, err := FormatTimeRange(start(record), end(record))
		if err != nil {
			return "", false
		}
		return formatted, true
	}
}
