package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
)

const (
	gameKeyPrefix  = "game:"
	recentGamesKey = "games:recent"

	maxUpdateRetries = 10
	scanBatchSize    = 200
)

type GameRepository interface {
	Get(ctx context.Context, id string) (*entity.Game, error)
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	Update(ctx context.Context, id string, update entity.GameUpdate) (*entity.Game, error)
	Delete(ctx context.Context, id string) error

	ListRecent(ctx context.Context, limit int) ([]*entity.Game, error)
	Stats(ctx context.Context) (entity.GameStats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type dbGame struct {
	client *redis.Client
}

// NewGameRepository stores each game as JSON under game:<id> and indexes ids by creation time.
func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

// prepareForCreate fills the fields owned by the store.
func prepareForCreate(game *entity.Game) *entity.Game {
	created := game.Clone()

	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if created.CurrentTurn == entity.EmptyCell {
		created.CurrentTurn = entity.PlayerX
	}

	if created.Status == "" {
		created.Status = entity.StatusWaiting
	}

	return created
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	created := prepareForCreate(game)

	gameJSON, err := json.Marshal(created)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(created.ID), gameJSON, 0)
		pipe.ZAdd(ctx, recentGamesKey, redis.Z{
			Score:  float64(created.CreatedAt.UnixNano()),
			Member: created.ID,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set game: %w", err)
	}

	return created, nil
}

func (that *dbGame) Get(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return decodeGame(response)
}

// Update applies the partial update under WATCH so concurrent writers cannot interleave.
func (that *dbGame) Update(ctx context.Context, id string, update entity.GameUpdate) (*entity.Game, error) {
	key := gameKey(id)

	var updated *entity.Game

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to get game by id: %w", err)
		}

		game, err := decodeGame(response)
		if err != nil {
			return err
		}

		if err = update.Apply(game); err != nil {
			return err
		}

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = game
		return nil
	}

	for range maxUpdateRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}

		return updated, nil
	}

	return nil, fmt.Errorf("failed to update game %s: too much contention", id)
}

func (that *dbGame) Delete(ctx context.Context, id string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, gameKey(id))
		pipe.ZRem(ctx, recentGamesKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}

func (that *dbGame) ListRecent(ctx context.Context, limit int) ([]*entity.Game, error) {
	if limit <= 0 {
		return []*entity.Game{}, nil
	}

	ids, err := that.client.ZRevRange(ctx, recentGamesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	return that.loadGames(ctx, ids)
}

func (that *dbGame) Stats(ctx context.Context) (entity.GameStats, error) {
	games, err := that.allGames(ctx)
	if err != nil {
		return entity.GameStats{}, err
	}

	return entity.ComputeStats(games), nil
}

func (that *dbGame) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	games, err := that.allGames(ctx)
	if err != nil {
		return nil, err
	}

	return entity.ComputeLeaderboard(games, limit), nil
}

func (that *dbGame) allGames(ctx context.Context) ([]*entity.Game, error) {
	ids, err := that.client.ZRange(ctx, recentGamesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for start := 0; start < len(ids); start += scanBatchSize {
		end := min(start+scanBatchSize, len(ids))

		batch, err := that.loadGames(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}

		games = append(games, batch...)
	}

	return games, nil
}

// loadGames fetches games in id order, skipping ids whose record has gone.
func (that *dbGame) loadGames(ctx context.Context, ids []string) ([]*entity.Game, error) {
	if len(ids) == 0 {
		return []*entity.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(id)
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	games := make([]*entity.Game, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		game, err := decodeGame(raw)
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, nil
}

func decodeGame(raw string) (*entity.Game, error) {
	var game entity.Game
	if err := json.Unmarshal([]byte(raw), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}
