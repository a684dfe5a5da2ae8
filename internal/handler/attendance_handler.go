package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.AttendanceRecord], error)
	CheckerList(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.AttendanceRecord], error)
	Export(ctx context.Context, token string, raw map[string]string, format string) (*dto.ExportFile, error)
}

// AttendanceHandler exposes attendance records and their exports.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param room query string false "Room contains"
// @Param block query string false "Block contains"
// @Param instructor query string false "Instructor contains"
// @Param status query string false "Exact status"
// @Param date query string false "Date contains"
// @Param day query string false "Exact weekday"
// @Param time query string false "Exact time"
// @Param checker query string false "Checker contains"
// @Success 200 {object} response.Envelope
// @Router /admin/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	h.screen(c, h.service.List)
}

// CheckerList godoc
// @Summary List attendance captured by the signed-in checker
// @Tags Checker
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /checker/attendance [get]
func (h *AttendanceHandler) CheckerList(c *gin.Context) {
	h.screen(c, h.service.CheckerList)
}

// Export godoc
// @Summary Export attendance records
// @Description Streams the filtered records as CSV or PDF
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	filters := queryFilters(c)
	format := filters["format"]
	delete(filters, "format")

	file, err := h.service.Export(c.Request.Context(), session.UpstreamToken, filters, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.ContentType, file.Filename, file.Body)
}

func (h *AttendanceHandler) screen(c *gin.Context, load func(context.Context, string, map[string]string) (*dto.Screen[models.AttendanceRecord], error)) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	screen, err := load(c.Request.Context(), session.UpstreamToken, queryFilters(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, screen, screenMeta(c, screen.Total, screen.Matched))
}
