package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/export"
)

var attendanceHeaders = []string{"Date", "Day", "Time", "Subject", "Room", "Block", "Instructor", "Checker", "Status"}

// ExportService turns filtered screens into downloadable documents.
type ExportService struct {
	title string
	now   func() time.Time
}

// NewExportService constructs an ExportService. title heads PDF exports.
func NewExportService(title string) *ExportService {
	if title == "" {
		title = "Attendance Records"
	}
	return &ExportService{title: title, now: time.Now}
}

// Attendance renders attendance records. Missing optional values print as blank cells.
func (s *ExportService) Attendance(records []models.AttendanceRecord, format export.Format, filters map[string]string) (*dto.ExportFile, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			deref(r.Day),
			r.Time,
			r.Subject,
			r.Room,
			r.Block,
			r.Instructor,
			deref(r.Checker),
			string(r.Status),
		})
	}

	title := s.title
	if summary := describeFilters(filters); summary != "" {
		title = title + " (" + summary + ")"
	}
	body, err := export.Render(format, export.Dataset{Title: title, Headers: attendanceHeaders, Rows: rows})
	if err != nil {
		return nil, err
	}

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("attendance-%s.%s", s.now().UTC().Format("20060102-150405"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func describeFilters(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+filters[k])
	}
	return strings.Join(parts, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
