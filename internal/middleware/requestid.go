package middleware

import (
	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request identifiers
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const (
	RequestIDHeader     = "X-Request-ID" // Header carrying the request id
	ContextRequestIDKey = "requestID"    // Context key of the request id
)

// RequestIDMiddleware tags each request with an id, reusing the client's when sent
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger returns a log entry carrying the request id and caller email
func Logger(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{"request_id": c.GetString(ContextRequestIDKey)}
	if identity, ok := CurrentIdentity(c); ok {
		fields["actor"] = identity.Email
	}
	return logrus.WithFields(fields)
}
