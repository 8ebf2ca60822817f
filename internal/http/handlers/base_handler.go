// README: Base handler utilities (JSON helpers, id check, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ordertrack/internal/modules/order"
	"ordertrack/internal/modules/quote"
	"ordertrack/internal/modules/tracking"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts the order server's ids: alphanumerics plus '-' and '_', at most 64 chars.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrBadRequest), errors.Is(err, quote.ErrInvalidPoint):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound), errors.Is(err, tracking.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracking.ErrNotAwaitingConfirmation),
		errors.Is(err, tracking.ErrConfirmInProgress),
		errors.Is(err, tracking.ErrAlreadyStarted):
		return http.StatusConflict
	case errors.Is(err, tracking.ErrStopped):
		return http.StatusGone
	case errors.Is(err, tracking.ErrConfirmFailed), errors.Is(err, order.ErrUnexpectedStatus):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeDomainError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		writeError(c, code, "internal error")
		return
	}
	writeError(c, code, err.Error())
}
