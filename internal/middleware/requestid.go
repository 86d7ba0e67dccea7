package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextRequestID = "request_id"

// RequestID assigns each request a unique id, echoed in the X-Request-ID
// response header and picked up by the request logger. An incoming
// X-Request-ID is honored so ids survive proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ContextRequestID, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}
