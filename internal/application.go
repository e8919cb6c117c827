package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/coolavy/CS50AI/internal/config"
	"github.com/coolavy/CS50AI/internal/repository"
	"github.com/coolavy/CS50AI/internal/repository/storage"
	"github.com/coolavy/CS50AI/internal/search"
	"github.com/coolavy/CS50AI/internal/service"
	"github.com/coolavy/CS50AI/internal/usecase"
	"github.com/coolavy/CS50AI/transport/rest"
	"github.com/coolavy/CS50AI/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	defaultStrategy, err := search.ParseStrategy(conf.Maze.Strategy)
	if err != nil {
		return fmt.Errorf("invalid maze strategy in config: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Cache.GameTTL)
	moveRepo := repository.NewMoveRepository(redisStorage, conf.Cache.MoveTTL)
	solutionRepo := repository.NewSolutionRepository(redisStorage, conf.Cache.SolutionTTL)

	botService := service.NewBotService(logger, moveRepo)
	gameUseCase := usecase.NewGameManager(logger, gameRepo, botService)
	mazeUseCase := usecase.NewMazeSolver(logger, solutionRepo, defaultStrategy)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameUseCase, mazeUseCase, conf.Maze.MaxLayoutBytes)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
