package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

func TestFromUpstream(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
		msg    string
	}{
		{"transport", errors.New("timeout"), appErrors.ErrBadGateway.Code, http.StatusBadGateway, "failed to load rooms"},
		{"unauthorized", &upstream.StatusError{Status: 401}, appErrors.ErrUnauthorized.Code, http.StatusUnauthorized, "backend rejected the session"},
		{"not found", &upstream.StatusError{Status: 404, Message: "Room not found"}, appErrors.ErrNotFound.Code, http.StatusNotFound, "Room not found"},
		{"unprocessable", &upstream.StatusError{Status: 422, Message: "The email has already been taken."}, appErrors.ErrValidation.Code, http.StatusUnprocessableEntity, "The email has already been taken."},
		{"server", &upstream.StatusError{Status: 500, Message: "SQLSTATE[42S02]"}, appErrors.ErrBadGateway.Code, http.StatusBadGateway, "failed to load rooms"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := appErrors.FromError(fromUpstream(tc.err, "failed to load rooms"))
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.msg, appErr.Message)
		})
	}
	assert.NoError(t, fromUpstream(nil, "x"))
}
