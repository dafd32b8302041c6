package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-live/internal/config"
	"github.com/rocketscienceinc/tictactoe-live/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-live/internal/repository"
	"github.com/rocketscienceinc/tictactoe-live/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-live/internal/room"
	"github.com/rocketscienceinc/tictactoe-live/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-live/transport/rest"
	"github.com/rocketscienceinc/tictactoe-live/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

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

	gameRepo, closeStore, err := openStore(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	recorder := metrics.NewRecorder()
	coordinator := room.NewCoordinator(logger, gameRepo, recorder, conf.Room.TeardownDelay)
	defer coordinator.Shutdown()

	gameManager := usecase.NewGameManager(logger, gameRepo, coordinator)
	registry := websocket.NewRegistry()

	restServer := rest.New(logger, gameManager, registry, recorder)
	wsServer := websocket.New(logger, coordinator, registry, recorder, websocket.Options{
		SendBuffer:     conf.Room.SendBuffer,
		OriginPatterns: conf.WebSocket.AllowedOrigins,
	})

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		err = fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		err = fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := wsServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("could not stop websocket server", "error", shutdownErr)
	}

	if shutdownErr := restServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("could not stop http server", "error", shutdownErr)
	}

	return err
}

// openStore connects the configured game store and returns a func that releases it.
func openStore(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	switch conf.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory storage, games are lost on restart")

		return repository.NewMemoryGameRepository(), func() {}, nil

	case config.StoragePostgres:
		pgStorage, err := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		if err = pgStorage.Init(ctx); err != nil {
			pgStorage.Close()
			return nil, nil, fmt.Errorf("could not init postgres storage: %w", err)
		}

		return repository.NewPostgresGameRepository(pgStorage.Connection), pgStorage.Close, nil

	default:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
			Addr:     redisAddrString,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
			PoolSize: conf.Redis.PoolSize,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeStore := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(redisStorage.Connection), closeStore, nil
	}
}
