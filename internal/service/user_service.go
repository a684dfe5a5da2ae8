package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/screens"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
	"github.com/noah-isme/campus-attendance-gateway/pkg/media"
)

type userClient interface {
	ListUsers(ctx context.Context, token string, role models.UserRole) ([]models.User, error)
	CreateUser(ctx context.Context, token string, in upstream.UserInput, photo *media.Photo) (*models.User, error)
	UpdateUser(ctx context.Context, token, id string, in upstream.UserInput, photo *media.Photo) (*models.User, error)
	DeleteUser(ctx context.Context, token, id string) error
}

// PhotoUpload is an attached profile photo as received from the client.
type PhotoUpload struct {
	Filename string
	Body     io.Reader
}

// UserService manages application users and the checker picker.
type UserService struct {
	client    userClient
	validator *validator.Validate
	logger    *zap.Logger
	photos    media.PhotoOptions
}

// NewUserService constructs a UserService.
func NewUserService(client userClient, validate *validator.Validate, logger *zap.Logger, photos media.PhotoOptions) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &UserService{client: client, validator: validate, logger: logger, photos: photos}
}

// List returns users filtered by raw.
func (s *UserService) List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.User], error) {
	return loadScreen(ctx, "users", screens.Users, s.loader(token), raw, s.logger, "failed to load users")
}

// Checkers returns the checker picker options.
func (s *UserService) Checkers(ctx context.Context, token string) ([]dto.CheckerOption, error) {
	users, err := s.client.ListUsers(ctx, token, models.RoleChecker)
	if err != nil {
		return nil, fromUpstream(err, "failed to load checkers")
	}
	options := make([]dto.CheckerOption, 0, len(users))
	for _, u := range users {
		options = append(options, dto.CheckerOption{ID: u.ID, FullName: u.FullName})
	}
	return options, nil
}

// Create validates the user, scales the optional photo and forwards the multipart upload.
func (s *UserService) Create(ctx context.Context, token string, req dto.UserRequest, photo *PhotoUpload) (*models.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.SchoolID = strings.TrimSpace(req.SchoolID)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}

	processed, err := s.preparePhoto(photo)
	if err != nil {
		return nil, err
	}

	created, err := s.client.CreateUser(ctx, token, upstream.UserInput{
		FullName: req.FullName,
		SchoolID: req.SchoolID,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.UserRole(req.Role),
		Password: req.Password,
	}, processed)
	if err != nil {
		return nil, fromUpstream(err, "failed to create user")
	}
	return created, nil
}

// Update validates the changed fields, scales the optional photo and forwards them.
func (s *UserService) Update(ctx context.Context, token, id string, req dto.UserUpdateRequest, photo *PhotoUpload) (*models.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.SchoolID = strings.TrimSpace(req.SchoolID)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}
	if req == (dto.UserUpdateRequest{}) && photo == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}

	processed, err := s.preparePhoto(photo)
	if err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateUser(ctx, token, id, upstream.UserInput{
		FullName: req.FullName,
		SchoolID: req.SchoolID,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.UserRole(req.Role),
		Password: req.Password,
	}, processed)
	if err != nil {
		return nil, fromUpstream(err, "failed to update user")
	}
	return updated, nil
}

// Delete removes a user and returns the re-fetched screen.
func (s *UserService) Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.User], error) {
	remove := func(ctx context.Context, id string) error { return s.client.DeleteUser(ctx, token, id) }
	return deleteAndReload(ctx, "users", screens.Users, s.loader(token), remove, id, raw, s.logger, "failed to load users")
}

func (s *UserService) preparePhoto(photo *PhotoUpload) (*media.Photo, error) {
	if photo == nil {
		return nil, nil
	}
	p, err := media.PreparePhoto(photo.Body, photo.Filename, s.photos)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "photo is too large")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "photo must be a JPEG or PNG image")
	}
	return &p, nil
}

func (s *UserService) loader(token string) func(context.Context) ([]models.User, error) {
	return func(ctx context.Context) ([]models.User, error) { return s.client.ListUsers(ctx, token, "") }
}
