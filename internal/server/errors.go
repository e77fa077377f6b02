package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"balances/internal/balance"
	"balances/internal/logger"
)

// Problem is the JSON error body.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case balance.IsNotFound(err):
		return http.StatusNotFound
	case balance.IsClientError(err):
		return http.StatusBadRequest
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		detail = http.StatusText(status)
	}

	log := logger.WithContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("Request rejected")
	}

	c.AbortWithStatusJSON(status, Problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
