package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorEnvelope is the uniform failure payload returned by every endpoint.
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorEnvelope{
					Success:   false,
					ErrorCode: "SERVER_ERROR",
					Message:   "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, errorCode, message string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("errorCode", errorCode))
	c.JSON(status, ErrorEnvelope{Success: false, ErrorCode: errorCode, Message: message})
}
