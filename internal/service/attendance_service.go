package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/screens"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
	"github.com/noah-isme/campus-attendance-gateway/pkg/export"
)

type attendanceClient interface {
	ListAttendance(ctx context.Context, token string) ([]models.AttendanceRecord, error)
	CheckerAttendance(ctx context.Context, token string) ([]models.AttendanceRecord, error)
}

type attendanceExporter interface {
	Attendance(records []models.AttendanceRecord, format export.Format, filters map[string]string) (*dto.ExportFile, error)
}

// AttendanceService serves the attendance record screens and their exports.
type AttendanceService struct {
	client   attendanceClient
	exporter attendanceExporter
	logger   *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(client attendanceClient, exporter attendanceExporter, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{client: client, exporter: exporter, logger: logger}
}

// List returns every attendance record filtered by raw.
func (s *AttendanceService) List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.AttendanceRecord], error) {
	return loadScreen(ctx, "attendance", screens.Attendance, s.allLoader(token), raw, s.logger, "failed to load attendance records")
}

// CheckerList returns the records captured by the signed-in checker.
func (s *AttendanceService) CheckerList(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.AttendanceRecord], error) {
	load := func(ctx context.Context) ([]models.AttendanceRecord, error) { return s.client.CheckerAttendance(ctx, token) }
	return loadScreen(ctx, "checker_attendance", screens.Attendance, load, raw, s.logger, "failed to load attendance records")
}

// Export renders the filtered attendance records as CSV or PDF.
func (s *AttendanceService) Export(ctx context.Context, token string, raw map[string]string, format string) (*dto.ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	v, err := mountView(ctx, "attendance_export", screens.Attendance, s.allLoader(token), raw, s.logger, "failed to load attendance records")
	if err != nil {
		return nil, err
	}
	defer v.Close()

	file, err := s.exporter.Attendance(v.Visible(), f, v.Selection())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return file, nil
}

func (s *AttendanceService) allLoader(token string) func(context.Context) ([]models.AttendanceRecord, error) {
	return func(ctx context.Context) ([]models.AttendanceRecord, error) { return s.client.ListAttendance(ctx, token) }
}
