package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of every error and of bare acknowledgements
type MessageResponse struct {
	Message string `json:"message"`
}

// Message sends {"message": msg} with the given status
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Message(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	Message(c, http.StatusForbidden, message)
}

// InternalServerError sends a 500 response without leaking details
func InternalServerError(c *gin.Context) {
	Message(c, http.StatusInternalServerError, ErrInternalServer)
}

// RespondError maps err onto an HTTP response. AppErrors below 500 keep their
// code and message; everything else is logged and answered with a generic 500.
func RespondError(c *gin.Context, err error) {
	if appErr := GetAppError(err); appErr != nil && appErr.Code < http.StatusInternalServerError {
		Message(c, appErr.Code, appErr.Message)
		return
	}
	LogError("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	InternalServerError(c)
}
