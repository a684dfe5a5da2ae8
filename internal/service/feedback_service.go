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

type feedbackClient interface {
	ListFeedback(ctx context.Context, token string) ([]models.Feedback, error)
	SubmitFeedback(ctx context.Context, token, message string) (*models.Feedback, error)
	ReviewFeedback(ctx context.Context, token, id string, in upstream.FeedbackReview) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, token, id string) error
}

// FeedbackService serves the checker feedback form and the admin inbox.
type FeedbackService struct {
	client    feedbackClient
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(client feedbackClient, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &FeedbackService{client: client, validator: validate, logger: logger}
}

// List returns feedback filtered by raw. The backend scopes checkers to their own entries.
func (s *FeedbackService) List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Feedback], error) {
	return loadScreen(ctx, "feedback", screens.Feedback, s.loader(token), raw, s.logger, "failed to load feedback")
}

// Submit posts a checker's message.
func (s *FeedbackService) Submit(ctx context.Context, token string, req dto.FeedbackRequest) (*models.Feedback, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid feedback payload")
	}
	created, err := s.client.SubmitFeedback(ctx, token, req.Message)
	if err != nil {
		return nil, fromUpstream(err, "failed to submit feedback")
	}
	return created, nil
}

// Review records an admin's status and response.
func (s *FeedbackService) Review(ctx context.Context, token, id string, req dto.FeedbackReviewRequest) (*models.Feedback, error) {
	req.AdminResponse = strings.TrimSpace(req.AdminResponse)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid feedback review")
	}
	updated, err := s.client.ReviewFeedback(ctx, token, id, upstream.FeedbackReview{
		Status:        models.FeedbackStatus(req.Status),
		AdminResponse: req.AdminResponse,
	})
	if err != nil {
		return nil, fromUpstream(err, "failed to update feedback")
	}
	return updated, nil
}

// Delete removes feedback and returns the re-fetched inbox.
func (s *FeedbackService) Delete(ctx context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Feedback], error) {
	remove := func(ctx context.Context, id string) error { return s.client.DeleteFeedback(ctx, token, id) }
	return deleteAndReload(ctx, "feedback", screens.Feedback, s.loader(token), remove, id, raw, s.logger, "failed to load feedback")
}

func (s *FeedbackService) loader(token string) func(context.Context) ([]models.Feedback, error) {
	return func(ctx context.Context) ([]models.Feedback, error) { return s.client.ListFeedback(ctx, token) }
}
