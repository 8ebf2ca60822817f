package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"ordertrack/internal/modules/order"
	"ordertrack/internal/modules/quote"
	"ordertrack/internal/modules/tracking"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{order.ErrBadRequest, http.StatusBadRequest},
		{quote.ErrInvalidPoint, http.StatusBadRequest},
		{fmt.Errorf("get order o-1: %w", order.ErrNotFound), http.StatusNotFound},
		{tracking.ErrSessionNotFound, http.StatusNotFound},
		{tracking.ErrNotAwaitingConfirmation, http.StatusConflict},
		{tracking.ErrConfirmInProgress, http.StatusConflict},
		{tracking.ErrStopped, http.StatusGone},
		{fmt.Errorf("%w: status 500", tracking.ErrConfirmFailed), http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestIsValidID(t *testing.T) {
	for _, id := range []string{"o-1", "665f1c2e9b1d4a0012ab34cd", "ORDER_42"} {
		if !isValidID(id) {
			t.Errorf("%q rejected", id)
		}
	}
	for _, id := range []string{"", "bad$id", "a/b", string(make([]byte, 65))} {
		if isValidID(id) {
			t.Errorf("%q accepted", id)
		}
	}
}
