package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

func sampleSchedules() []models.Schedule {
	return []models.Schedule{
		{ID: 1, SubjectCode: "IT 101", Subject: "Programming", Room: "V209", Block: "BSIT-1A", Day: models.Monday, StartTime: "08:00", EndTime: "12:00", Instructor: &models.InstructorRef{ID: 1, FullName: "Jelson V. Lanto"}},
		{ID: 2, SubjectCode: "GE 5", Subject: "Purposive Communication", Room: "V401", Block: "BSIT-1B", Day: models.Tuesday, StartTime: "13:00", EndTime: "15:00", Instructor: &models.InstructorRef{ID: 2, FullName: "Yuri Rancudo"}},
		{ID: 3, SubjectCode: "PE 1", Subject: "Movement", Room: "Gym", Block: "BSIT-1A", Day: models.Monday, Time: "3:00 PM - 5:00 PM"},
	}
}

func TestScheduleListFiltersAndFacets(t *testing.T) {
	backend := &fakeBackend{schedules: sampleSchedules()}
	svc := NewScheduleService(backend, nil, nil)

	screen, err := svc.List(context.Background(), "token", map[string]string{"day": "Monday", "format": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, 3, screen.Total)
	assert.Equal(t, 2, screen.Matched)
	assert.Equal(t, map[string]string{"day": "Monday"}, map[string]string(screen.Filters))

	require.NotEmpty(t, screen.Facets)
	assert.Equal(t, "day", screen.Facets[0].Field)
	assert.Len(t, screen.Facets[0].Options, 8)

	var times []string
	for _, f := range screen.Facets {
		if f.Field == "time" {
			for _, o := range f.Options {
				times = append(times, o.Value)
			}
		}
	}
	assert.Equal(t, []string{"", "8:00 AM - 12:00 PM", "1:00 PM - 3:00 PM", "3:00 PM - 5:00 PM"}, times)
}

func TestScheduleListInstructorContainsSkipsMissingReference(t *testing.T) {
	backend := &fakeBackend{schedules: sampleSchedules()}
	svc := NewScheduleService(backend, nil, nil)

	screen, err := svc.List(context.Background(), "token", map[string]string{"instructor": "yuri"})
	require.NoError(t, err)
	require.Len(t, screen.Items, 1)
	assert.Equal(t, int64(2), screen.Items[0].ID)
}

func TestScheduleListBackendFailureIsBadGateway(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("dial tcp: connection refused")}
	svc := NewScheduleService(backend, nil, nil)

	_, err := svc.List(context.Background(), "token", nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBadGateway.Code, appErr.Code)
	assert.Equal(t, "failed to load schedules", appErr.Message)
}

func TestScheduleCreateNormalisesTimes(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewScheduleService(backend, nil, nil)

	created, err := svc.Create(context.Background(), "token", dto.ScheduleRequest{
		SubjectCode: "IT 101", Subject: "Programming", Block: "BSIT-1A",
		StartTime: "08:00", EndTime: "2:00 pm", Day: "Monday", Room: "V209",
		InstructorID: 1, AssignedCheckerID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, "8:00 AM", backend.lastSchedule.StartTime)
	assert.Equal(t, "2:00 PM", backend.lastSchedule.EndTime)
	assert.Equal(t, models.Monday, backend.lastSchedule.Day)
}

func TestScheduleCreateRejectsEndBeforeStart(t *testing.T) {
	svc := NewScheduleService(&fakeBackend{}, nil, nil)

	_, err := svc.Create(context.Background(), "token", dto.ScheduleRequest{
		SubjectCode: "IT 101", Subject: "Programming", Block: "A",
		StartTime: "13:00", EndTime: "08:00", Day: "Monday", Room: "V209",
		InstructorID: 1, AssignedCheckerID: 4,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Contains(t, err.Error(), "end time must be after start time")
}

func TestScheduleCreateRejectsUnknownDayAndMissingFields(t *testing.T) {
	svc := NewScheduleService(&fakeBackend{}, nil, nil)

	_, err := svc.Create(context.Background(), "token", dto.ScheduleRequest{Day: "Funday", StartTime: "eight"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "day failed weekday")
	assert.Contains(t, appErr.Message, "start_time failed clock")
}

func TestScheduleDeleteRefetches(t *testing.T) {
	backend := &fakeBackend{schedules: sampleSchedules()}
	svc := NewScheduleService(backend, nil, nil)

	screen, err := svc.Delete(context.Background(), "token", "2", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls())
	assert.Equal(t, 2, screen.Total)
	for _, f := range screen.Facets {
		for _, o := range f.Options {
			assert.NotEqual(t, "V401", o.Value)
			assert.NotEqual(t, "Yuri Rancudo", o.Value)
		}
	}
}

func TestScheduleDeleteFailureSkipsRefetch(t *testing.T) {
	backend := &fakeBackend{
		schedules: sampleSchedules(),
		deleteErr: &upstream.StatusError{Status: http.StatusNotFound, Message: "Schedule not found"},
	}
	svc := NewScheduleService(backend, nil, nil)

	_, err := svc.Delete(context.Background(), "token", "42", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, 0, backend.calls())
}

func TestDashboardShowsFirstTwoWithPlaceholders(t *testing.T) {
	backend := &fakeBackend{schedules: sampleSchedules()}
	svc := NewScheduleService(backend, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.August, 4, 9, 0, 0, 0, time.UTC) }

	dash, err := svc.Dashboard(context.Background(), "token", models.User{ID: 4, FullName: "Ana Cruz"})
	require.NoError(t, err)
	assert.Equal(t, "Monday", dash.Today)
	assert.Equal(t, 3, dash.TodayCount)
	require.Len(t, dash.Upcoming, 2)
	assert.Equal(t, "8:00 AM - 12:00 PM", dash.Upcoming[0].Time)

	backend.schedules = sampleSchedules()[2:]
	dash, err = svc.Dashboard(context.Background(), "token", models.User{ID: 4})
	require.NoError(t, err)
	require.Len(t, dash.Upcoming, 1)
	assert.Equal(t, "N/A", dash.Upcoming[0].Instructor)
	assert.Equal(t, "3:00 PM - 5:00 PM", dash.Upcoming[0].Time)
}
