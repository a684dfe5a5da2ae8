package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/query"
	"github.com/noah-isme/campus-attendance-gateway/internal/screens"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

type scheduleClient interface {
	ListSchedules(ctx context.Context, token string) ([]models.Schedule, error)
	CheckerSchedules(ctx context.Context, token string) ([]models.Schedule, error)
	CheckerSchedulesToday(ctx context.Context, token string) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, token string, in upstream.ScheduleInput) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, token, id string, in upstream.ScheduleInput) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, token, id string) error
}

// dashboardUpcoming is how many of today's schedules the checker home screen shows.
const dashboardUpcoming = 2

const missingPlaceholder = "N/A"

// ScheduleService serves the admin schedule screen and the checker schedule screens.
type ScheduleService struct {
	client    scheduleClient
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(client scheduleClient, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ScheduleService{client: client, validator: validate, logger: logger, now: time.Now}
}

// List returns every schedule filtered by raw.
func (s *ScheduleService) List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	load := func(ctx context.Context) ([]models.Schedule, error) { return s.client.ListSchedules(ctx, token) }
	return loadScreen(ctx, "schedules", screens.Schedules, load, raw, s.logger, "failed to load schedules")
}

// CheckerList returns the signed-in checker's schedules.
func (s *ScheduleService) CheckerList(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	load := func(ctx context.Context) ([]models.Schedule, error) { return s.client.CheckerSchedules(ctx, token) }
	return loadScreen(ctx, "checker_schedules", screens.Schedules, load, raw, s.logger, "failed to load schedules")
}

// CheckerToday returns the signed-in checker's schedules for today.
func (s *ScheduleService) CheckerToday(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	load := func(ctx context.Context) ([]models.Schedule, error) { return s.client.CheckerSchedulesToday(ctx, token) }
	return loadScreen(ctx, "checker_schedules_today", screens.Schedules, load, raw, s.logger, "failed to load today's schedules")
}

// Dashboard builds the checker home screen from today's schedules.
func (s *ScheduleService) Dashboard(ctx context.Context, token string, checker models.User) (*dto.CheckerDashboard, error) {
	today, err := s.client.CheckerSchedulesToday(ctx, token)
	if err != nil {
		s.logger.Sugar().Warnw("dashboard schedules failed", "user_id", checker.ID, "error", err)
		return nil, fromUpstream(err, "failed to load today's schedules")
	}

	now := s.now()
	upcoming := make([]dto.DashboardSchedule, 0, dashboardUpcoming)
	for _, sched := range today {
		if len(upcoming) == dashboardUpcoming {
			break
		}
		upcoming = append(upcoming, flattenSchedule(sched))
	}

	return &dto.CheckerDashboard{
		Checker:     checker.FullName,
		Today:       now.Weekday().String(),
		GeneratedAt: now.UTC(),
		TodayCount:  len(today),
		Upcoming:    upcoming,
	}, nil
}

// Create validates and forwards a new schedule.
func (s *ScheduleService) Create(ctx context.Context, token string, req dto.ScheduleRequest) (*models.Schedule, error) {
	in, err := s.input(req)
	if err != nil {
		return nil, err
	}
	created, err := s.client.CreateSchedule(ctx, token, in)
	if err != nil {
		return nil, fromUpstream(err, "failed to create schedule")
	}
	return created, nil
}

// Update validates and forwards a schedule replacement.
func (s *ScheduleService) Update(ctx context.Context, token, id string, req dto.ScheduleRequest) (*models.Schedule, error) {
	in, err := s.input(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateSchedule(ctx, token, id, in)
	if err != nil {
		return nil, fromUpstream(err, "failed to update schedule")
	}
	return updated, nil
}

// Delete removes a schedule and returns the re-fetched screen.
func (s *ScheduleService) Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	load := func(ctx context.Context) ([]models.Schedule, error) { return s.client.ListSchedules(ctx, token) }
	remove := func(ctx context.Context, id string) error { return s.client.DeleteSchedule(ctx, token, id) }
	return deleteAndReload(ctx, "schedules", screens.Schedules, load, remove, id, raw, s.logger, "failed to load schedules")
}

func (s *ScheduleService) input(req dto.ScheduleRequest) (upstream.ScheduleInput, error) {
	if err := s.validator.Struct(req); err != nil {
		return upstream.ScheduleInput{}, validationError(err, "invalid schedule payload")
	}
	start, err := query.ParseClock(req.StartTime)
	if err != nil {
		return upstream.ScheduleInput{}, validationError(err, "invalid start time")
	}
	end, err := query.ParseClock(req.EndTime)
	if err != nil {
		return upstream.ScheduleInput{}, validationError(err, "invalid end time")
	}
	if !end.After(start) {
		return upstream.ScheduleInput{}, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}

	return upstream.ScheduleInput{
		SubjectCode:       req.SubjectCode,
		Subject:           req.Subject,
		Block:             req.Block,
		StartTime:         start.Format(query.ClockLayout),
		EndTime:           end.Format(query.ClockLayout),
		Day:               models.Weekday(req.Day),
		Room:              req.Room,
		InstructorID:      req.InstructorID,
		AssignedCheckerID: req.AssignedCheckerID,
	}, nil
}

func flattenSchedule(s models.Schedule) dto.DashboardSchedule {
	out := dto.DashboardSchedule{
		ID:          s.ID,
		SubjectCode: s.SubjectCode,
		Subject:     s.Subject,
		Room:        s.Room,
		Block:       s.Block,
		Day:         string(s.Day),
		Time:        missingPlaceholder,
		Instructor:  missingPlaceholder,
	}
	if t, ok := s.TimeRange(); ok {
		out.Time = t
	}
	if name, ok := s.InstructorName(); ok && name != "" {
		out.Instructor = name
	}
	return out
}
