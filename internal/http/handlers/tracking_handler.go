// README: Tracking handlers; start/stop sessions, read views, stream views over SSE, confirm receipt.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ordertrack/internal/modules/location"
	"ordertrack/internal/modules/tracking"
	"ordertrack/internal/types"
)

type Sessions interface {
	Open(id types.ID) (*tracking.Session, bool, error)
	Get(id types.ID) (*tracking.Session, bool)
	Close(id types.ID) error
}

// ViewCache serves the last recorded view and sample history; location.Store implements it.
type ViewCache interface {
	LastView(ctx context.Context, orderID types.ID) ([]byte, error)
	History(ctx context.Context, orderID types.ID, limit int) ([]location.Sample, error)
}

type TrackingHandler struct {
	sessions Sessions
	cache    ViewCache
}

// NewTrackingHandler accepts a nil cache.
func NewTrackingHandler(sessions Sessions, cache ViewCache) *TrackingHandler {
	return &TrackingHandler{sessions: sessions, cache: cache}
}

func (h *TrackingHandler) Start(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	s, created, err := h.sessions.Open(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	writeJSON(c, code, s.View())
}

func (h *TrackingHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if s, ok := h.sessions.Get(id); ok {
		writeJSON(c, http.StatusOK, s.View())
		return
	}
	if h.cache != nil {
		b, err := h.cache.LastView(c.Request.Context(), id)
		if err == nil {
			c.Header("X-View-Source", "cache")
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			return
		}
		if !errors.Is(err, location.ErrNoView) {
			_ = c.Error(err)
		}
	}
	writeDomainError(c, tracking.ErrSessionNotFound)
}

func (h *TrackingHandler) Events(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		writeDomainError(c, tracking.ErrSessionNotFound)
		return
	}
	views, cancel := s.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case v, ok := <-views:
			if !ok {
				return false
			}
			c.SSEvent("view", v)
			return v.Phase != tracking.PhaseTerminal
		case <-ctx.Done():
			return false
		}
	})
}

func (h *TrackingHandler) ConfirmReceipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		writeDomainError(c, tracking.ErrSessionNotFound)
		return
	}
	if err := s.ConfirmReceipt(c.Request.Context()); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, s.View())
}

func (h *TrackingHandler) Stop(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.sessions.Close(id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrackingHandler) History(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if h.cache == nil {
		writeError(c, http.StatusServiceUnavailable, "history store not configured")
		return
	}
	limit := 100
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			writeError(c, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}
	samples, err := h.cache.History(c.Request.Context(), id, limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if samples == nil {
		samples = []location.Sample{}
	}
	writeJSON(c, http.StatusOK, gin.H{"orderId": id, "samples": samples})
}

func orderID(c *gin.Context) (types.ID, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid order id")
		return "", false
	}
	return types.ID(id), true
}
