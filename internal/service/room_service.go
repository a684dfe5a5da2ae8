package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/screens"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

type roomClient interface {
	ListRooms(ctx context.Context, token string) ([]models.Room, error)
	AssignChecker(ctx context.Context, token string, roomID int64, checkerID *int64) (*models.Room, error)
}

// RoomService serves the room assignment screen.
type RoomService struct {
	client    roomClient
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(client roomClient, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &RoomService{client: client, validator: validate, logger: logger}
}

// List returns rooms filtered by raw.
func (s *RoomService) List(ctx context.Context, token string, raw map[string]string) (*dto.Screen[models.Room], error) {
	return loadScreen(ctx, "rooms", screens.Rooms, s.loader(token), raw, s.logger, "failed to load rooms")
}

// AssignChecker sets or clears a room's checker and returns the re-fetched screen.
func (s *RoomService) AssignChecker(ctx context.Context, token, roomID string, req dto.AssignCheckerRequest, raw map[string]string) (*dto.Screen[models.Room], error) {
	id, err := strconv.ParseInt(roomID, 10, 64)
	if err != nil || id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room id must be a positive integer")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid checker assignment")
	}
	if _, err := s.client.AssignChecker(ctx, token, id, req.CheckerID); err != nil {
		return nil, fromUpstream(err, "failed to update room checker")
	}
	return s.List(ctx, token, raw)
}

func (s *RoomService) loader(token string) func(context.Context) ([]models.Room, error) {
	return func(ctx context.Context) ([]models.Room, error) { return s.client.ListRooms(ctx, token) }
}
