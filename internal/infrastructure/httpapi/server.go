package httpapi

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"NewsSift/internal/domain"
	"NewsSift/internal/usecase"
)

// CycleRunner runs one ingestion cycle on demand.
type CycleRunner interface {
	Run(ctx context.Context, opts usecase.CycleOptions) (*usecase.CycleResult, error)
}

// Server exposes the manual cycle trigger and a liveness probe.
type Server struct {
	echo         *echo.Echo
	pipeline     CycleRunner
	serviceToken string
	logger       *slog.Logger
}

// NewServer wires routes onto a fresh echo instance. An empty
// serviceToken leaves the trigger endpoint open, which is only sensible
// behind a trusted network boundary.
func NewServer(pipeline CycleRunner, serviceToken string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{echo: e, pipeline: pipeline, serviceToken: serviceToken, logger: logger}

	e.GET("/healthz", s.health)
	e.POST("/api/v1/scrape", s.triggerScrape, s.requireServiceToken)

	return s
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying mux for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type scrapeRequest struct {
	Category    string `json:"category"`
	MaxArticles int    `json:"maxArticles"`
}

type scrapeResponse struct {
	Success            bool                    `json:"success"`
	Results            []usecase.SourceResult  `json:"results,omitempty"`
	TotalArticlesAdded int                     `json:"totalArticlesAdded"`
	CategoryBreakdown  map[domain.Category]int `json:"categoryBreakdown,omitempty"`
	DeviationAlert     bool                    `json:"deviationAlert"`
	Recommendations    []string                `json:"recommendations,omitempty"`
	Error              string                  `json:"error,omitempty"`
}

func (s *Server) triggerScrape(c echo.Context) error {
	var req scrapeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, scrapeResponse{Success: false, Error: "invalid request body"})
	}

	category := req.Category
	if category == "all" {
		category = ""
	}

	started := time.Now()
	result, err := s.pipeline.Run(c.Request().Context(), usecase.CycleOptions{
		Category:    domain.Category(category),
		MaxArticles: req.MaxArticles,
	})
	if err != nil {
		s.logger.Error("manual cycle failed", "error", err)
		return c.JSON(http.StatusInternalServerError, scrapeResponse{Success: false, Error: err.Error()})
	}

	s.logger.Info("manual cycle done",
		"articlesAdded", result.TotalArticlesAdded,
		"elapsed", time.Since(started).Round(time.Millisecond))

	return c.JSON(http.StatusOK, scrapeResponse{
		Success:            true,
		Results:            result.Results,
		TotalArticlesAdded: result.TotalArticlesAdded,
		CategoryBreakdown:  result.CategoryBreakdown,
		DeviationAlert:     result.DeviationAlert,
		Recommendations:    result.Recommendations,
	})
}

// requireServiceToken gates mutating endpoints behind a shared bearer
// token when one is configured.
func (s *Server) requireServiceToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.serviceToken == "" {
			return next(c)
		}
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.serviceToken)) != 1 {
			return c.JSON(http.StatusUnauthorized, scrapeResponse{Success: false, Error: "unauthorized"})
		}
		return next(c)
	}
}
