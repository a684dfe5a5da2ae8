package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

type roomService interface {
	List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Room], error)
	AssignChecker(ctx context.Context, token, roomID string, req dto.AssignCheckerRequest, raw map[string]string) (*dto.Screen[models.Room], error)
}

// RoomHandler serves room checker assignment.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler constructs handler.
func NewRoomHandler(svc roomService) *RoomHandler {
	return &RoomHandler{service: svc}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param building query string false "Exact building"
// @Param room query string false "Room contains"
// @Param checker query string false "Checker contains"
// @Success 200 {object} response.Envelope
// @Router /admin/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
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

// AssignChecker godoc
// @Summary Assign or clear a room's checker
// @Description checker_id null clears the assignment; returns the re-fetched room list
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param payload body dto.AssignCheckerRequest true "Checker assignment"
// @Success 200 {object} response.Envelope
// @Router /admin/rooms/{id}/checker [put]
func (h *RoomHandler) AssignChecker(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.AssignCheckerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid checker assignment"))
		return
	}
	screen, err := h.service.AssignChecker(c.Request.Context(), session.UpstreamToken, c.Param("id"), req, queryFilters(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, screen, screenMeta(c, screen.Total, screen.Matched))
}
