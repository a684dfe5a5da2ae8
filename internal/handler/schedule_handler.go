package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error)
	CheckerList(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error)
	CheckerToday(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error)
	Dashboard(ctx context.Context, token string, checker models.User) (*dto.CheckerDashboard, error)
	Create(ctx context.Context, token string, req dto.ScheduleRequest) (*models.Schedule, error)
	Update(ctx context.Context, token, id string, req dto.ScheduleRequest) (*models.Schedule, error)
	Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Schedule], error)
}

// ScheduleHandler manages schedule endpoints for admins and checkers.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedules
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param day query string false "Exact weekday"
// @Param time query string false "Exact time range, e.g. 8:00 AM - 12:00 PM"
// @Param room query string false "Room contains"
// @Param block query string false "Block contains"
// @Param instructor query string false "Instructor contains"
// @Param checker query string false "Checker contains"
// @Param subject query string false "Subject contains"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	h.screen(c, h.service.List)
}

// CheckerList godoc
// @Summary List the signed-in checker's schedules
// @Tags Checker
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /checker/schedules [get]
func (h *ScheduleHandler) CheckerList(c *gin.Context) {
	h.screen(c, h.service.CheckerList)
}

// CheckerToday godoc
// @Summary List today's schedules for the signed-in checker
// @Tags Checker
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /checker/schedules/today [get]
func (h *ScheduleHandler) CheckerToday(c *gin.Context) {
	h.screen(c, h.service.CheckerToday)
}

// Dashboard godoc
// @Summary Checker home screen
// @Tags Checker
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /checker/dashboard [get]
func (h *ScheduleHandler) Dashboard(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	dashboard, err := h.service.Dashboard(c.Request.Context(), session.UpstreamToken, session.User)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

// Create godoc
// @Summary Create schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid schedule payload"))
		return
	}
	schedule, err := h.service.Create(c.Request.Context(), session.UpstreamToken, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Update godoc
// @Summary Update schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param payload body dto.ScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /admin/schedules/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid schedule payload"))
		return
	}
	schedule, err := h.service.Update(c.Request.Context(), session.UpstreamToken, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schedule)
}

// Delete godoc
// @Summary Delete schedule
// @Description Deletes the schedule and returns the re-fetched list
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /admin/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	screen, err := h.service.Delete(c.Request.Context(), session.UpstreamToken, c.Param("id"), queryFilters(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, screen, screenMeta(c, screen.Total, screen.Matched))
}

func (h *ScheduleHandler) screen(c *gin.Context, load func(context.Context, string, map[string]string) (*dto.Screen[models.Schedule], error)) {
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
