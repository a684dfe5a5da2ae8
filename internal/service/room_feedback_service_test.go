package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

func sampleRooms() []models.Room {
	return []models.Room{
		{ID: 1, RoomNumber: "V209", BuildingID: 1, Building: &models.Building{ID: 1, Name: "Villanueva"}, Checker: &models.CheckerRef{ID: 4, FullName: "Ana Cruz"}},
		{ID: 2, RoomNumber: "M101", BuildingID: 2, Building: &models.Building{ID: 2, Name: "Main"}},
		{ID: 3, RoomNumber: "X1"},
	}
}

func TestRoomListBuildingFacet(t *testing.T) {
	svc := NewRoomService(&fakeBackend{rooms: sampleRooms()}, nil, nil)

	screen, err := svc.List(context.Background(), "token", map[string]string{"building": "Main"})
	require.NoError(t, err)
	require.Len(t, screen.Items, 1)
	assert.Equal(t, "M101", screen.Items[0].RoomNumber)

	labels := []string{}
	for _, o := range screen.Facets[0].Options {
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []string{"All Buildings", "Villanueva", "Main"}, labels)
}

func TestAssignCheckerRefetches(t *testing.T) {
	backend := &fakeBackend{rooms: sampleRooms()}
	svc := NewRoomService(backend, nil, nil)

	checker := int64(4)
	screen, err := svc.AssignChecker(context.Background(), "token", "2", dto.AssignCheckerRequest{CheckerID: &checker}, nil)
	require.NoError(t, err)
	assert.Equal(t, &checker, backend.lastAssignment)
	assert.Equal(t, 1, backend.calls())
	assert.Equal(t, 3, screen.Total)

	_, err = svc.AssignChecker(context.Background(), "token", "abc", dto.AssignCheckerRequest{}, nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.AssignChecker(context.Background(), "token", "77", dto.AssignCheckerRequest{}, nil)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestFeedbackReviewAndDelete(t *testing.T) {
	backend := &fakeBackend{feedback: []models.Feedback{
		{ID: 1, Message: "Projector broken in V209", Status: models.FeedbackPending},
		{ID: 2, Message: "Schedule conflict", Status: models.FeedbackAccepted},
	}}
	svc := NewFeedbackService(backend, nil, nil)

	updated, err := svc.Review(context.Background(), "token", "1", dto.FeedbackReviewRequest{Status: "Declined", AdminResponse: " duplicate "})
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackDeclined, updated.Status)
	assert.Equal(t, "duplicate", backend.lastReview.AdminResponse)

	_, err = svc.Review(context.Background(), "token", "1", dto.FeedbackReviewRequest{Status: "Maybe"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	screen, err := svc.Delete(context.Background(), "token", "2", map[string]string{"status": "Accepted"})
	require.NoError(t, err)
	assert.Empty(t, screen.Items)
	assert.Equal(t, 1, screen.Total)
	assert.Len(t, screen.Facets[0].Options, 4)
}

func TestFeedbackSubmitRequiresMessage(t *testing.T) {
	svc := NewFeedbackService(&fakeBackend{}, nil, nil)

	_, err := svc.Submit(context.Background(), "token", dto.FeedbackRequest{Message: "   "})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	fb, err := svc.Submit(context.Background(), "token", dto.FeedbackRequest{Message: "Door locked"})
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackPending, fb.Status)
}
