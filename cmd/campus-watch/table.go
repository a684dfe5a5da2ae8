package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
)

const missingCell = "-"

type column[T any] struct {
	header string
	value  func(T) string
}

func optional(v string, ok bool) string {
	if !ok || v == "" {
		return missingCell
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return missingCell
	}
	return optional(*s, true)
}

var scheduleColumns = []column[models.Schedule]{
	{"DAY", func(s models.Schedule) string { return string(s.Day) }},
	{"TIME", func(s models.Schedule) string { return optional(s.TimeRange()) }},
	{"SUBJECT", func(s models.Schedule) string { return s.SubjectCode }},
	{"ROOM", func(s models.Schedule) string { return s.Room }},
	{"BLOCK", func(s models.Schedule) string { return s.Block }},
	{"INSTRUCTOR", func(s models.Schedule) string { return optional(s.InstructorName()) }},
	{"CHECKER", func(s models.Schedule) string { return optional(s.CheckerName()) }},
}

var attendanceColumns = []column[models.AttendanceRecord]{
	{"DATE", func(a models.AttendanceRecord) string { return a.Date }},
	{"TIME", func(a models.AttendanceRecord) string { return a.Time }},
	{"SUBJECT", func(a models.AttendanceRecord) string { return a.Subject }},
	{"ROOM", func(a models.AttendanceRecord) string { return a.Room }},
	{"INSTRUCTOR", func(a models.AttendanceRecord) string { return a.Instructor }},
	{"CHECKER", func(a models.AttendanceRecord) string { return deref(a.Checker) }},
	{"STATUS", func(a models.AttendanceRecord) string { return string(a.Status) }},
}

var roomColumns = []column[models.Room]{
	{"ROOM", func(r models.Room) string { return r.RoomNumber }},
	{"BUILDING", func(r models.Room) string {
		if r.Building == nil {
			return missingCell
		}
		return r.Building.Name
	}},
	{"CHECKER", func(r models.Room) string {
		if r.Checker == nil {
			return missingCell
		}
		return r.Checker.FullName
	}},
}

var feedbackColumns = []column[models.Feedback]{
	{"ID", func(f models.Feedback) string { return fmt.Sprint(f.ID) }},
	{"STATUS", func(f models.Feedback) string { return string(f.Status) }},
	{"MESSAGE", func(f models.Feedback) string { return truncate(f.Message, 60) }},
}

var instructorColumns = []column[models.Instructor]{
	{"ID", func(i models.Instructor) string { return i.InstructorID }},
	{"NAME", func(i models.Instructor) string { return i.FullName }},
	{"DEPARTMENT", func(i models.Instructor) string { return string(i.Department) }},
	{"EMAIL", func(i models.Instructor) string { return i.Email }},
}

var userColumns = []column[models.User]{
	{"SCHOOL ID", func(u models.User) string { return u.SchoolID }},
	{"NAME", func(u models.User) string { return u.FullName }},
	{"ROLE", func(u models.User) string { return string(u.Role) }},
	{"EMAIL", func(u models.User) string { return u.Email }},
}

// renderTable writes rows as aligned columns followed by a count line.
func renderTable[T any](w io.Writer, cols []column[T], rows []T, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.value(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d shown\n", len(rows), total)
	return err
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
