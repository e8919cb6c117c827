package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	BestMove(ctx context.Context, board tictactoe.Board) (*entity.Decision, error)
}

type mazeUseCase interface {
	Solve(ctx context.Context, layout, strategy string) (*entity.MazeSolution, error)
}

// Server exposes the tic-tac-toe and maze engines over HTTP.
type Server struct {
	logger *slog.Logger

	games gameUseCase
	mazes mazeUseCase

	maxBodyBytes int64
}

// New returns a Server; maxBodyBytes caps request bodies of the maze endpoint.
func New(logger *slog.Logger, games gameUseCase, mazes mazeUseCase, maxBodyBytes int64) *Server {
	return &Server{
		logger: logger.With("component", "rest"),

		games: games,
		mazes: mazes,

		maxBodyBytes: maxBodyBytes,
	}
}

// Router builds the chi router with all REST routes.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", that.ping)
	r.Post("/tictactoe/move", that.bestMove)
	r.Post("/maze/solve", that.solveMaze)

	return r
}

// Start serves until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
