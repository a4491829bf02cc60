package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scholar-ai/internal/apperr"
)

// statusFor maps the error taxonomy onto HTTP status codes. Caller
// mistakes are 4xx, our own misconfiguration is 500, upstream trouble is
// 502/504.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, apperr.ErrIntegration), errors.Is(err, apperr.ErrFormat):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
