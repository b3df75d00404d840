package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is an error with an HTTP status attached.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware converts errors attached to the context into the
// unified failure envelope.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error")
			}
		}
	}
}
