package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sid-0307/Kudumbam/internal/domain/services"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrFamilyNotFound),
		errors.Is(err, services.ErrPersonNotFound),
		errors.Is(err, services.ErrRelationshipNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRelationshipExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with {"error": ...}. Internal errors are logged and not echoed.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		msg = http.StatusText(status)
	}
	if status == http.StatusRequestEntityTooLarge {
		msg = "request body too large"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
