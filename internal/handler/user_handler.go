package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/service"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

const photoField = "photo"

type userService interface {
	List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.User], error)
	Checkers(ctx context.Context, token string) ([]dto.CheckerOption, error)
	Create(ctx context.Context, token string, req dto.UserRequest, photo *service.PhotoUpload) (*models.User, error)
	Update(ctx context.Context, token, id string, req dto.UserUpdateRequest, photo *service.PhotoUpload) (*models.User, error)
	Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.User], error)
}

// UserHandler manages application users.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs a new user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains"
// @Param school_id query string false "School ID contains"
// @Param role query string false "Exact role"
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
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

// Checkers godoc
// @Summary Checker picker options
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/checkers [get]
func (h *UserHandler) Checkers(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	options, err := h.service.Checkers(c.Request.Context(), session.UpstreamToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, options)
}

// Create godoc
// @Summary Create user
// @Description Accepts JSON, or multipart form data with an optional photo file
// @Tags Users
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}

	var req dto.UserRequest
	photo, closePhoto, err := bindUserForm(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closePhoto()

	user, err := h.service.Create(c.Request.Context(), session.UpstreamToken, req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Update godoc
// @Summary Update user
// @Description Only the fields sent are changed. Accepts JSON, or multipart form data with an optional photo file
// @Tags Users
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body dto.UserUpdateRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}

	var req dto.UserUpdateRequest
	photo, closePhoto, err := bindUserForm(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closePhoto()

	user, err := h.service.Update(c.Request.Context(), session.UpstreamToken, c.Param("id"), req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
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

// bindUserForm reads a user payload from JSON or multipart form data. The returned
// func releases the uploaded photo and is safe to call when there is none.
func bindUserForm(c *gin.Context, req interface{}) (*service.PhotoUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(req); err != nil {
			return nil, noop, invalidPayload(err, "invalid user payload")
		}
		return nil, noop, nil
	}

	if err := c.ShouldBind(req); err != nil {
		return nil, noop, invalidPayload(err, "invalid user payload")
	}
	header, err := c.FormFile(photoField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, invalidPayload(err, "invalid photo upload")
	}
	file, err := header.Open()
	if err != nil {
		return nil, noop, invalidPayload(err, "invalid photo upload")
	}
	return &service.PhotoUpload{Filename: header.Filename, Body: file}, func() { _ = file.Close() }, nil
}
