package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
)

const (
	MaxNicknameLength = 20

	RecentGamesLimit = 50
	LeaderboardLimit = 50
)

type gameRepo interface {
	Get(ctx context.Context, id string) (*entity.Game, error)
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	Update(ctx context.Context, id string, update entity.GameUpdate) (*entity.Game, error)
	Delete(ctx context.Context, id string) error

	ListRecent(ctx context.Context, limit int) ([]*entity.Game, error)
	Stats(ctx context.Context) (entity.GameStats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type roomCloser interface {
	CloseRoom(gameID string)
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	rooms    roomCloser
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, rooms roomCloser) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),

		gameRepo: gameRepo,
		rooms:    rooms,
	}
}

// NormalizeNickname trims surrounding space and enforces the length limit.
func NormalizeNickname(raw string) (string, error) {
	nickname := strings.TrimSpace(raw)

	if nickname == "" {
		return "", apperror.ErrNicknameRequired
	}

	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return "", fmt.Errorf("%w: max %d characters", apperror.ErrNicknameTooLong, MaxNicknameLength)
	}

	return nickname, nil
}

// Start creates a new waiting game for nickname, or seats nickname as player 2 when gameID is set.
// Rooms are not touched; clients join them over the socket afterwards.
func (that *GameManager) Start(ctx context.Context, nickname, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "Start")

	nickname, err := NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	if gameID == "" {
		game, err := that.gameRepo.Create(ctx, entity.NewGame(nickname))
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		log.Info("game created", "game_id", game.ID, "player", nickname)

		return game, nil
	}

	game, err := that.gameRepo.Update(ctx, gameID, entity.Seat(nickname))
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	log.Info("player joined game", "game_id", game.ID, "player", nickname)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) ListRecent(ctx context.Context) ([]*entity.Game, error) {
	games, err := that.gameRepo.ListRecent(ctx, RecentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

func (that *GameManager) Stats(ctx context.Context) (entity.GameStats, error) {
	stats, err := that.gameRepo.Stats(ctx)
	if err != nil {
		return entity.GameStats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *GameManager) Leaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	entries, err := that.gameRepo.Leaderboard(ctx, LeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return entries, nil
}

// DeleteGame removes the record and drops any room still open for it. Unknown ids are not an error.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	log := that.logger.With("method", "DeleteGame")

	if err := that.gameRepo.Delete(ctx, gameID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.rooms.CloseRoom(gameID)

	log.Info("game deleted", "game_id", gameID)

	return nil
}
