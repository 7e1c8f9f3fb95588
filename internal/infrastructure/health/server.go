package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the liveness endpoint. GET / and GET /health answer 200
// with a plaintext body; every other path is a 404. It shares no state with
// the pipeline.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer builds the liveness server on the given port.
func NewServer(port int, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	ok := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/", ok)
	router.GET("/health", ok)

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if s.logger != nil {
		s.logger.Info("liveness endpoint up", "addr", s.srv.Addr)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("liveness server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
