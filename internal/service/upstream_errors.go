package service

import (
	"net/http"

	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

// fromUpstream maps a backend failure onto the gateway error taxonomy. Anything the
// caller cannot fix becomes BAD_GATEWAY with the generic message.
func fromUpstream(err error, message string) error {
	if err == nil {
		return nil
	}
	se, ok := upstream.AsStatusError(err)
	if !ok {
		return appErrors.Wrap(err, appErrors.ErrBadGateway.Code, appErrors.ErrBadGateway.Status, message)
	}
	switch se.Status {
	case http.StatusUnauthorized:
		return appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "backend rejected the session")
	case http.StatusForbidden:
		return appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, backendMessage(se, "forbidden"))
	case http.StatusNotFound:
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, backendMessage(se, "resource not found"))
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, se.Status, backendMessage(se, message))
	default:
		return appErrors.Wrap(err, appErrors.ErrBadGateway.Code, appErrors.ErrBadGateway.Status, message)
	}
}

func backendMessage(se *upstream.StatusError, fallback string) string {
	if se.Message != "" {
		return se.Message
	}
	return fallback
}
