package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/screens"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
)

type instructorClient interface {
	ListInstructors(ctx context.Context, token string) ([]models.Instructor, error)
	CreateInstructor(ctx context.Context, token string, in upstream.InstructorInput) (*models.Instructor, error)
	UpdateInstructor(ctx context.Context, token, id string, in upstream.InstructorInput) (*models.Instructor, error)
	DeleteInstructor(ctx context.Context, token, id string) error
}

// InstructorService manages the instructor roster.
type InstructorService struct {
	client    instructorClient
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs an InstructorService.
func NewInstructorService(client instructorClient, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &InstructorService{client: client, validator: validate, logger: logger}
}

// List returns instructors filtered by raw.
func (s *InstructorService) List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Instructor], error) {
	return loadScreen(ctx, "instructors", screens.Instructors, s.loader(token), raw, s.logger, "failed to load instructors")
}

// Create validates and forwards a new instructor.
func (s *InstructorService) Create(ctx context.Context, token string, req dto.InstructorRequest) (*models.Instructor, error) {
	in, err := s.input(req)
	if err != nil {
		return nil, err
	}
	created, err := s.client.CreateInstructor(ctx, token, in)
	if err != nil {
		return nil, fromUpstream(err, "failed to create instructor")
	}
	return created, nil
}

// Update validates and forwards an instructor replacement.
func (s *InstructorService) Update(ctx context.Context, token, id string, req dto.InstructorRequest) (*models.Instructor, error) {
	in, err := s.input(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateInstructor(ctx, token, id, in)
	if err != nil {
		return nil, fromUpstream(err, "failed to update instructor")
	}
	return updated, nil
}

// Delete removes an instructor and returns the re-fetched screen.
func (s *InstructorService) Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Instructor], error) {
	remove := func(ctx context.Context, id string) error { return s.client.DeleteInstructor(ctx, token, id) }
	return deleteAndReload(ctx, "instructors", screens.Instructors, s.loader(token), remove, id, raw, s.logger, "failed to load instructors")
}

func (s *InstructorService) loader(token string) func(context.Context) ([]models.Instructor, error) {
	return func(ctx context.Context) ([]models.Instructor, error) { return s.client.ListInstructors(ctx, token) }
}

func (s *InstructorService) input(req dto.InstructorRequest) (upstream.InstructorInput, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.InstructorID = strings.TrimSpace(req.InstructorID)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return upstream.InstructorInput{}, validationError(err, "invalid instructor payload")
	}
	return upstream.InstructorInput{
		FullName:     req.FullName,
		InstructorID: req.InstructorID,
		Course:       models.Department(req.Department),
		Email:        req.Email,
		Phone:        req.Phone,
	}, nil
}
