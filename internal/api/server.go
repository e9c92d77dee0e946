package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tigerprompts/internal/pipeline"
	"github.com/tigerprompts/pkg/models"
)

// HistoryStore is the saved-prompt storage used by the history routes.
type HistoryStore interface {
	Save(ctx context.Context, original, enhanced string) (models.SavedPrompt, error)
	List(ctx context.Context) ([]models.SavedPrompt, error)
	Get(ctx context.Context, id string) (models.SavedPrompt, error)
	Delete(ctx context.Context, id string) error
}

// Options configures the server.
type Options struct {
	Port      int
	RateLimit float64 // LLM-bound requests per second per client; 0 disables limiting
	Burst     int
}

// Server represents the API server
type Server struct {
	echo     *echo.Echo
	port     int
	enhancer *pipeline.Enhancer
	history  HistoryStore
	llmLimit echo.MiddlewareFunc
}

// NewServer creates a new API server. history may be nil, in which case
// the history routes answer 503.
func NewServer(opts Options, enhancer *pipeline.Enhancer, history HistoryStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if enhancer == nil {
		enhancer = pipeline.New()
	}

	server := &Server{
		echo:     e,
		port:     opts.Port,
		enhancer: enhancer,
		history:  history,
		llmLimit: rateLimiter(opts.RateLimit, opts.Burst),
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":        "healthy",
			"llm_available": s.enhancer.HasCompleter(),
			"history":       s.history != nil,
		})
	})

	v1 := s.echo.Group("/api/v1")

	// Analysis endpoints
	v1.POST("/classify", s.classify)
	v1.POST("/ambiguity", s.ambiguity)
	v1.POST("/pqs", s.scorePQS)
	v1.POST("/synthesize", s.synthesize)
	v1.POST("/scan", s.scan)

	// Enhancement endpoints
	v1.POST("/enhance", s.enhance)
	v1.POST("/run", s.run, s.llmLimit)

	// History endpoints
	v1.GET("/history", s.listHistory)
	v1.POST("/history", s.saveHistory)
	v1.GET("/history/:id", s.getHistory)
	v1.DELETE("/history/:id", s.deleteHistory)
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start begins the API server and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", s.port).Msg("Starting API server")
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Debug()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// rateLimiter limits LLM-bound requests per client IP.
func rateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			log.Warn().Str("client", identifier).Msg("LLM request rate limited")
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
		},
	})
}
