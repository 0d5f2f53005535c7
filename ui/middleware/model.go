package middleware

import (
	"careerpath/domain/core"

	"github.com/gin-gonic/gin"
)

const (
	// RunHeader names the training run that answered the request
	RunHeader = "X-Model-Run"
	// RequestHeader carries a per-request ID for correlating logs
	RequestHeader = "X-Request-Id"
)

// ModelRun tags every response with the run ID of the loaded model.
// An empty runID leaves responses untouched.
func ModelRun(runID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runID != "" {
			c.Header(RunHeader, runID)
		}
		c.Next()
	}
}

// RequestID reuses an incoming X-Request-Id or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestHeader)
		if id == "" {
			id = core.NewRequestID().String()
		}
		c.Set("request_id", id)
		c.Header(RequestHeader, id)
		c.Next()
	}
}
