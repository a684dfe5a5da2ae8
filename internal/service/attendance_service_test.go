package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

func strPtr(s string) *string { return &s }

func sampleAttendance() []models.AttendanceRecord {
	return []models.AttendanceRecord{
		{ID: 1, Time: "8:00 AM - 12:00 PM", Subject: "IT 101", Room: "V209", Block: "BSIT-1A", Date: "August 4, 2025", Status: models.AttendancePresent, Instructor: "Jelson V. Lanto", Day: strPtr("Monday")},
		{ID: 2, Time: "1:00 PM - 3:00 PM", Subject: "GE 5", Room: "V401", Block: "BSIT-1B", Date: "August 5, 2025", Status: models.AttendanceLate, Instructor: "Yuri Rancudo", Checker: strPtr("Ana Cruz")},
	}
}

func newAttendance(backend *fakeBackend) *AttendanceService {
	exporter := NewExportService("Attendance Records")
	exporter.now = func() time.Time { return time.Date(2025, 8, 6, 10, 0, 0, 0, time.UTC) }
	return NewAttendanceService(backend, exporter, nil)
}

func TestAttendanceListFiltersByStatusAndDate(t *testing.T) {
	svc := newAttendance(&fakeBackend{attendance: sampleAttendance()})

	screen, err := svc.List(context.Background(), "token", map[string]string{"status": "Late", "date": "august"})
	require.NoError(t, err)
	require.Len(t, screen.Items, 1)
	assert.Equal(t, int64(2), screen.Items[0].ID)
}

func TestAttendanceMissingDayNeverMatchesDayFilter(t *testing.T) {
	svc := newAttendance(&fakeBackend{attendance: sampleAttendance()})

	screen, err := svc.CheckerList(context.Background(), "token", map[string]string{"day": "Monday"})
	require.NoError(t, err)
	require.Len(t, screen.Items, 1)
	assert.Equal(t, int64(1), screen.Items[0].ID)
}

func TestAttendanceExportCSV(t *testing.T) {
	svc := newAttendance(&fakeBackend{attendance: sampleAttendance()})

	file, err := svc.Export(context.Background(), "token", map[string]string{"room": "v4"}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "attendance-20250806-100000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, []string{"August 5, 2025", "", "1:00 PM - 3:00 PM", "GE 5", "V401", "BSIT-1B", "Yuri Rancudo", "Ana Cruz", "Late"}, rows[1])
}

func TestAttendanceExportPDFAndBadFormat(t *testing.T) {
	svc := newAttendance(&fakeBackend{attendance: sampleAttendance()})

	file, err := svc.Export(context.Background(), "token", nil, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))

	_, err = svc.Export(context.Background(), "token", nil, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestDescribeFiltersIsSorted(t *testing.T) {
	assert.Equal(t, "room: V2, status: Late", describeFilters(map[string]string{"status": "Late", "room": "V2"}))
	assert.Empty(t, describeFilters(nil))
}
