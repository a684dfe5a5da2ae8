package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/middleware"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

// sessionFromContext returns the caller's session or writes 401 and returns nil.
func sessionFromContext(c *gin.Context) *models.Session {
	session := middleware.SessionFrom(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil
	}
	return session
}

// queryFilters flattens the query string to one value per key. Services keep only the
// keys their screen's schema knows.
func queryFilters(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	out := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out
}

func invalidPayload(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// screenMeta copies list counters into the response metadata.
func screenMeta(c *gin.Context, total, matched int) map[string]interface{} {
	middleware.SetMeta(c, "total", total)
	middleware.SetMeta(c, "matched", matched)
	return middleware.ExtractMeta(c)
}
