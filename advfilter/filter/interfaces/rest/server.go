package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	filter "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/catalog"
)

const shutdownTimeout = 5 * time.Second

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithNow sets the clock used for presets in every endpoint.
func WithNow(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// Server exposes the catalog, the in-memory evaluator and the predicate
// compiler over HTTP.
type Server struct {
	catalog   catalog.Catalog
	evaluator *filter.Evaluator
	now       func() time.Time
	logger    *slog.Logger
}

func NewServer(c catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: c,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for i := range opts {
		opts[i](s)
	}
	s.evaluator = filter.NewEvaluator(filter.WithNow(s.now))
	return s
}

func (s *Server) Router() *echo.Echo {
	router := echo.New()

	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = s.handleError
	router.JSONSerializer = serializer{}
	router.Validator = requestValidator{validate: validator.New()}

	router.Use(middleware.Recover())
	router.Use(middleware.BodyLimit("4M"))
	router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	router.Use(s.logRequests)

	filters := router.Group("/filters")
	filters.GET("/entities", s.listEntities)
	filters.GET("/entities/:entity/fields", s.listFields)
	filters.GET("/operators", s.listOperators)
	filters.GET("/presets", s.listPresets)
	filters.GET("/where", s.buildWhere)
	filters.POST("/apply", s.applyFilters)

	return router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	router := s.Router()
	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start(addr)
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "serve %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(router.Shutdown(shutdownCtx), "shutdown")
	}
}

func (s *Server) requestLogger(c echo.Context) *slog.Logger {
	return s.logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		s.requestLogger(c).Info("request",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"latency", time.Since(start),
		)
		return nil
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	logger := s.requestLogger(c)
	if code >= http.StatusInternalServerError {
		logger.Error(message, "error", err)
	} else {
		logger.Warn(message, "status", code)
	}

	if err := c.JSON(code, map[string]string{
		"error":   http.StatusText(code),
		"message": message,
	}); err != nil {
		logger.Error("write error response", "error", err)
	}
}
