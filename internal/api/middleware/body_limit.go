package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// BodyLimit caps the request body size. Oversized bodies get a 413
// before any handler reads them; the bulk-import upload is the reason
// this exists.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
