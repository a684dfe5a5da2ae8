package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
)

// AuditRecorder accepts audit entries without blocking the request.
type AuditRecorder interface {
	Record(entry models.AuditLog)
}

// Audit records successful mutations after the handler ran. The route's :id param,
// when present, becomes the resource id.
func Audit(recorder AuditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		entry := models.AuditLog{
			Action:    action,
			Resource:  resource,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			CreatedAt: start,
		}
		if claims := ClaimsFrom(c); claims != nil {
			userID := claims.UserID
			entry.UserID = &userID
			entry.Role = string(claims.Role)
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}
		entry.Details, _ = json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		recorder.Record(entry)
	}
}
