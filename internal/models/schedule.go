package models

import (
	"strings"

	"github.com/noah-isme/campus-attendance-gateway/internal/query"
)

// Weekday names a day a class meets on.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays returns every weekday in calendar order starting Monday.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayNames is Weekdays as plain strings.
func WeekdayNames() []string {
	days := Weekdays()
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return out
}

// Valid returns true for the seven supported day names.
func (d Weekday) Valid() bool {
	for _, w := range Weekdays() {
		if d == w {
			return true
		}
	}
	return false
}

// InstructorRef is the instructor embedded in schedule payloads.
type InstructorRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// CheckerRef is the checker user embedded in schedule and room payloads.
type CheckerRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// Schedule is one class meeting as returned by the backend.
type Schedule struct {
	ID          int64          `json:"id"`
	SubjectCode string         `json:"subject_code"`
	Subject     string         `json:"subject"`
	Room        string         `json:"room"`
	Block       string         `json:"block"`
	Day         Weekday        `json:"day"`
	StartTime   string         `json:"start_time,omitempty"`
	EndTime     string         `json:"end_time,omitempty"`
	Time        string         `json:"time,omitempty"`
	Instructor  *InstructorRef `json:"instructor,omitempty"`
	Checker     *CheckerRef    `json:"checker,omitempty"`
}

// TimeRange returns the display time range. Start/end pairs take precedence over the
// pre-formatted time string; ok is false when neither yields a usable value.
func (s Schedule) TimeRange() (string, bool) {
	if s.StartTime != "" && s.EndTime != "" {
		formatted, err := query.FormatTimeRange(s.StartTime, s.EndTime)
		if err != nil {
			return "", false
		}
		return formatted, true
	}
	if t := strings.TrimSpace(s.Time); t != "" {
		return t, true
	}
	return "", false
}

// InstructorName returns the embedded instructor's name.
func (s Schedule) InstructorName() (string, bool) {
	if s.Instructor == nil {
		return "", false
	}
	return s.Instructor.FullName, true
}

// CheckerName returns the assigned checker's name.
func (s Schedule) CheckerName() (string, bool) {
	if s.Checker == nil {
		return "", false
	}
	return s.Checker.FullName, true
}
