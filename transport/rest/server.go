package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
	"github.com/rocketscienceinc/tictactoe-live/internal/metrics"
)

type gameManager interface {
	Start(ctx context.Context, nickname, gameID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	ListRecent(ctx context.Context) ([]*entity.Game, error)
	Stats(ctx context.Context) (entity.GameStats, error)
	Leaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type onlineCounter interface {
	Count() int
}

type Server struct {
	logger   *slog.Logger
	games    gameManager
	online   onlineCounter
	recorder *metrics.Recorder

	mu  sync.Mutex
	srv *http.Server
}

func New(logger *slog.Logger, games gameManager, online onlineCounter, recorder *metrics.Recorder) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		games:    games,
		online:   online,
		recorder: recorder,
	}
}

// Handler returns the routes wrapped in the request metrics middleware.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.ping)

	mux.HandleFunc("GET /api/games", that.listGames)
	mux.HandleFunc("GET /api/games/{id}", that.getGame)
	mux.HandleFunc("POST /api/games/start", that.startGame)
	mux.HandleFunc("DELETE /api/games/{id}", that.deleteGame)

	mux.HandleFunc("GET /api/stats", that.stats)
	mux.HandleFunc("GET /api/leaderboard", that.leaderboard)
	mux.HandleFunc("GET /api/online-count", that.onlineCount)

	mux.Handle("GET /metrics", that.recorder.Handler())

	return that.instrument(mux)
}

// Start - starts HTTP server. It blocks until Shutdown is called.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	that.mu.Lock()
	that.srv = srv
	that.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	that.mu.Lock()
	srv := that.srv
	that.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	return nil
}
