package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	Open(ctx context.Context, sessionID string) (*usecase.Session, error)
	MakeMove(ctx context.Context, sessionID string, cell int) (*usecase.Session, error)
	JumpTo(ctx context.Context, sessionID string, step int) (*usecase.Session, error)
	Restart(ctx context.Context, sessionID string) (*usecase.Session, error)
}

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	renderer *view.Renderer

	sessionTTL time.Duration
	router     *httprouter.Router
}

// New builds the router. sessionTTL sets how long the session cookie lives.
func New(logger *slog.Logger, game gameUseCase, renderer *view.Renderer, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:     logger.With("component", "rest"),
		game:       game,
		renderer:   renderer,
		sessionTTL: sessionTTL,
		router:     httprouter.New(),
	}

	server.router.GET("/", server.handleIndex)
	server.router.POST("/move/:cell", server.handleMove)
	server.router.POST("/jump/:step", server.handleJump)
	server.router.POST("/new", server.handleNew)
	server.router.GET("/ping", handlePing)
	server.router.ServeFiles("/assets/*filepath", http.FS(view.Assets()))

	server.router.PanicHandler = server.handlePanic

	return server
}

// Mount serves handler for GET requests on path, e.g. the WebSocket endpoint.
func (that *Server) Mount(path string, handler http.Handler) {
	that.router.Handler(http.MethodGet, path, handler)
}

func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	securityHeaders(writer)
	that.router.ServeHTTP(writer, req)
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func securityHeaders(writer http.ResponseWriter) {
	writer.Header().Set("Content-Security-Policy", "default-src 'self'")
	writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	writer.Header().Set("X-Content-Type-Options", "nosniff")
	writer.Header().Set("X-Frame-Options", "DENY")
}
