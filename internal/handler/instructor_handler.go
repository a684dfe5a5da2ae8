package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

type instructorService interface {
	List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Instructor], error)
	Create(ctx context.Context, token string, req dto.InstructorRequest) (*models.Instructor, error)
	Update(ctx context.Context, token, id string, req dto.InstructorRequest) (*models.Instructor, error)
	Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Instructor], error)
}

// InstructorHandler manages the instructor roster.
type InstructorHandler struct {
	service instructorService
}

// NewInstructorHandler constructs handler.
func NewInstructorHandler(svc instructorService) *InstructorHandler {
	return &InstructorHandler{service: svc}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains"
// @Param instructor_id query string false "Instructor ID contains"
// @Param department query string false "Exact department"
// @Success 200 {object} response.Envelope
// @Router /admin/instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	screen, err := h.service.List(c.Request.Context(), session.UpstreamToken, queryFilters(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, screen, screenMeta(c, screen.Total, screen.Matched))
}

// Create godoc
// @Summary Create instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.InstructorRequest true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Router /admin/instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.InstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid instructor payload"))
		return
	}
	instructor, err := h.service.Create(c.Request.Context(), session.UpstreamToken, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

// Update godoc
// @Summary Update instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Instructor ID"
// @Param payload body dto.InstructorRequest true "Instructor payload"
// @Success 200 {object} response.Envelope
// @Router /admin/instructors/{id} [put]
func (h *InstructorHandler) Update(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.InstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid instructor payload"))
		return
	}
	instructor, err := h.service.Update(c.Request.Context(), session.UpstreamToken, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, instructor)
}

// Delete godoc
// @Summary Delete instructor
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /admin/instructors/{id} [delete]
func (h *InstructorHandler) Delete(c *gin.Context) {
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
