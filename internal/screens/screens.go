// Package screens declares the filter schema of every list screen. Each schema is the
// generic query engine instantiated with the field accessors of one record type.
package screens

import (
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/query"
)

// Filter field names shared by several screens.
const (
	FieldDay          = "day"
	FieldTime         = "time"
	FieldRoom         = "room"
	FieldBlock        = "block"
	FieldInstructor   = "instructor"
	FieldChecker      = "checker"
	FieldSubject      = "subject"
	FieldName         = "name"
	FieldInstructorID = "instructor_id"
	FieldDepartment   = "department"
	FieldSchoolID     = "school_id"
	FieldRole         = "role"
	FieldStatus       = "status"
	FieldDate         = "date"
	FieldBuilding     = "building"
)

// Schedules filters admin and checker schedule lists.
var Schedules = query.NewSchema(
	query.Exact(FieldDay, "Days", query.Always(func(s models.Schedule) string { return string(s.Day) })).
		WithFixed(models.WeekdayNames()...),
	query.Exact(FieldTime, "Times", models.Schedule.TimeRange),
	query.Contains(FieldRoom, "Rooms", query.Always(func(s models.Schedule) string { return s.Room })),
	query.Contains(FieldBlock, "Blocks", query.Always(func(s models.Schedule) string { return s.Block })),
	query.Contains(FieldInstructor, "Instructors", models.Schedule.InstructorName),
	query.Contains(FieldChecker, "Checkers", models.Schedule.CheckerName),
	query.Contains(FieldSubject, "Subjects", query.Always(func(s models.Schedule) string {
		if s.SubjectCode == "" {
			return s.Subject
		}
		return s.SubjectCode + " | " + s.Subject
	})),
)

// Instructors filters the instructor roster.
var Instructors = query.NewSchema(
	query.Contains(FieldName, "Names", query.Always(func(i models.Instructor) string { return i.FullName })),
	query.Contains(FieldInstructorID, "IDs", query.Always(func(i models.Instructor) string { return i.InstructorID })),
	query.Exact(FieldDepartment, "Course", query.Always(func(i models.Instructor) string { return string(i.Department) })).
		WithFixed(models.Departments()...),
)

// Users filters the user management list.
var Users = query.NewSchema(
	query.Contains(FieldName, "Names", query.Always(func(u models.User) string { return u.FullName })),
	query.Contains(FieldSchoolID, "IDs", query.Always(func(u models.User) string { return u.SchoolID })),
	query.Exact(FieldRole, "Roles", query.Always(func(u models.User) string { return string(u.Role) })).
		WithFixed(models.RoleNames()...),
)

// Attendance filters attendance records for admins and checkers.
var Attendance = query.NewSchema(
	query.Contains(FieldRoom, "Rooms", query.Always(func(a models.AttendanceRecord) string { return a.Room })),
	query.Contains(FieldBlock, "Blocks", query.Always(func(a models.AttendanceRecord) string { return a.Block })),
	query.Contains(FieldInstructor, "Instructors", query.Always(func(a models.AttendanceRecord) string { return a.Instructor })),
	query.Exact(FieldStatus, "Status", query.Always(func(a models.AttendanceRecord) string { return string(a.Status) })).
		WithFixed(models.AttendanceStatusNames()...),
	query.Contains(FieldDate, "Dates", query.Always(func(a models.AttendanceRecord) string { return a.Date })),
	query.Exact(FieldDay, "Days", query.Optional(func(a models.AttendanceRecord) *string { return a.Day })).
		WithFixed(models.WeekdayNames()...),
	query.Exact(FieldTime, "Times", query.Always(func(a models.AttendanceRecord) string { return a.Time })),
	query.Contains(FieldChecker, "Checkers", query.Optional(func(a models.AttendanceRecord) *string { return a.Checker })),
)

// Feedback filters the feedback inbox.
var Feedback = query.NewSchema(
	query.Exact(FieldStatus, "Status", query.Always(func(f models.Feedback) string { return string(f.Status) })).
		WithFixed(models.FeedbackStatusNames()...),
)

// Rooms filters the room assignment list.
var Rooms = query.NewSchema(
	query.Exact(FieldBuilding, "Buildings", func(r models.Room) (string, bool) {
		if r.Building == nil {
			return "", false
		}
		return r.Building.Name, true
	}),
	query.Contains(FieldRoom, "Rooms", query.Always(func(r models.Room) string { return r.RoomNumber })),
	query.Contains(FieldChecker, "Checkers", func(r models.Room) (string, bool) {
		if r.Checker == nil {
			return "", false
		}
		return r.Checker.FullName, true
	}),
)
