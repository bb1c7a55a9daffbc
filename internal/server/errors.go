package server

import (
	"errors"
	"net/http"

	submissiondomain "github.com/formbridge/formbridge/internal/submission/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success bool                          `json:"success"`
	Message string                        `json:"message"`
	Errors  []submissiondomain.FieldError `json:"errors,omitempty"`
}

// ErrorHandlingMiddleware converts errors attached to the context into
// the JSON error envelope. Handlers call AbortWithError and return.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &submissiondomain.ValidationError{
		Fields: []submissiondomain.FieldError{
			{Field: field, Code: code, Message: message},
		},
	}
}

func mapError(err error) (int, errorResponse) {
	var vErr *submissiondomain.ValidationError
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  vErr.Fields,
		}
	}

	var pErr *submissiondomain.PersistenceError
	if errors.As(err, &pErr) {
		// Storage details stay in the logs.
		return http.StatusInternalServerError, errorResponse{
			Success: false,
			Message: "Error saving form data",
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Success: false,
		Message: "Internal server error",
	}
}
