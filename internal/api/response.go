package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified success envelope.
type Response struct {
	Code    int         `json:"code"`    // 0 means success
	Message string      `json:"message"` // response message
	Data    interface{} `json:"data"`    // payload
}

// ErrorResponse is the unified failure envelope. Errors carries the
// accumulated human-readable messages for form display.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes a failure envelope with the given HTTP status.
func Error(c *gin.Context, code int, message string, errs ...string) {
	statusCode := http.StatusInternalServerError
	if code >= 400 && code < 600 {
		statusCode = code
	}

	c.JSON(statusCode, ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  errs,
	})
}
