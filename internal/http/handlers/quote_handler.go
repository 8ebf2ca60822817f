// README: Quote handler for the pre-checkout delivery estimate.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordertrack/internal/modules/quote"
)

type QuoteHandler struct {
	quotes *quote.Service
}

func NewQuoteHandler(svc *quote.Service) *QuoteHandler {
	return &QuoteHandler{quotes: svc}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req quote.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	q, err := h.quotes.Estimate(req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}
