package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FallbackResponse is what a client sees when a handler panics
type FallbackResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Recovery confines a panic to the request that raised it and answers with
// a fallback body. Other requests and the process keep running.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, FallbackResponse{
					Error:   "Something went wrong.",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
