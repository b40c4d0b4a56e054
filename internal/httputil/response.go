// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/licenses/internal/errors"
)

// ErrorResponse is the error envelope on every non-2xx body. Details carries
// the cause for webhook consumers; Message carries the human text for the
// validation endpoint. Exactly one of the two is set per endpoint.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and writes the JSON
// error envelope. Invalid input maps to 400, upstream timeouts to 504, and
// collaborator failures together with anything unknown to 500.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errorResponse = ErrorResponse{
			Status:  "error",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrTimeout):
		statusCode = http.StatusGatewayTimeout
		errorResponse = ErrorResponse{
			Status:  "error",
			Details: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Status:  "error",
			Details: err.Error(),
		}

	default:
		// Unknown errors stay opaque to the client.
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Status:  "error",
			Details: "an internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or
// missing parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}
