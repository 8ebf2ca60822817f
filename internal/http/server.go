// README: API gateway; registers gin routes and delegates to tracking and quote services.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ordertrack/internal/http/handlers"
	"ordertrack/internal/http/middleware"
	"ordertrack/internal/modules/quote"
)

type ServerDeps struct {
	Sessions handlers.Sessions
	// Cache is optional.
	Cache  handlers.ViewCache
	Quotes *quote.Service
	Logger *slog.Logger
	// Token guards /api when set.
	Token string
}

type Server struct {
	tracking *handlers.TrackingHandler
	quotes   *handlers.QuoteHandler
	logger   *slog.Logger
	token    string
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Quotes == nil {
		deps.Quotes = quote.NewService()
	}
	return &Server{
		tracking: handlers.NewTrackingHandler(deps.Sessions, deps.Cache),
		quotes:   handlers.NewQuoteHandler(deps.Quotes),
		logger:   deps.Logger,
		token:    deps.Token,
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(s.logger), middleware.Logging(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(s.token))
	api.POST("/tracking/:id", s.tracking.Start)
	api.GET("/tracking/:id", s.tracking.Get)
	api.DELETE("/tracking/:id", s.tracking.Stop)
	api.GET("/tracking/:id/events", s.tracking.Events)
	api.GET("/tracking/:id/history", s.tracking.History)
	api.POST("/tracking/:id/confirm-receipt", s.tracking.ConfirmReceipt)
	api.POST("/quotes", s.quotes.Create)
	return r
}

// ViewCache is re-exported for callers wiring the server.
type ViewCache = handlers.ViewCache
