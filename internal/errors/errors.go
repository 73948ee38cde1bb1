package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// AppError represents a standardized application error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// RenderPage renders the HTML error page for page routes.
func RenderPage(c *gin.Context, statusCode int, err *AppError) {
	c.HTML(statusCode, "error.html", gin.H{
		"Code":    err.Code,
		"Message": err.Message,
	})
}

// NotFoundPage renders a 404 error page
func NotFoundPage(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RenderPage(c, http.StatusNotFound, NewAppError(ErrCodeNotFound, message))
}

// InternalErrorPage renders a 500 error page
func InternalErrorPage(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RenderPage(c, http.StatusInternalServerError, NewAppError(ErrCodeInternalError, message))
}
