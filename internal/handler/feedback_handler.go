package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

type feedbackService interface {
	List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Feedback], error)
	Submit(ctx context.Context, token string, req dto.FeedbackRequest) (*models.Feedback, error)
	Review(ctx context.Context, token, id string, req dto.FeedbackReviewRequest) (*models.Feedback, error)
	Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Feedback], error)
}

// FeedbackHandler serves the checker feedback form and admin inbox.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// List godoc
// @Summary List feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param status query string false "Exact status"
// @Success 200 {object} response.Envelope
// @Router /admin/feedback [get]
// @Router /checker/feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
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

// Submit godoc
// @Summary Submit feedback
// @Tags Checker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} response.Envelope
// @Router /checker/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid feedback payload"))
		return
	}
	created, err := h.service.Submit(c.Request.Context(), session.UpstreamToken, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Review godoc
// @Summary Review feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Param payload body dto.FeedbackReviewRequest true "Review"
// @Success 200 {object} response.Envelope
// @Router /admin/feedback/{id} [put]
func (h *FeedbackHandler) Review(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	var req dto.FeedbackReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid feedback review"))
		return
	}
	updated, err := h.service.Review(c.Request.Context(), session.UpstreamToken, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

// Delete godoc
// @Summary Delete feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Envelope
// @Router /admin/feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
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
