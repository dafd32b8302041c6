package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
}

// NewMemoryGameRepository keeps games in process. Records are copied on every read and write.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*entity.Game),
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) (*entity.Game, error) {
	created := prepareForCreate(game)

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[created.ID]; ok {
		return nil, fmt.Errorf("game %s already exists", created.ID)
	}

	that.games[created.ID] = created.Clone()

	return created, nil
}

func (that *memoryGame) Get(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return game.Clone(), nil
}

func (that *memoryGame) Update(_ context.Context, id string, update entity.GameUpdate) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	game := stored.Clone()
	if err := update.Apply(game); err != nil {
		return nil, err
	}

	that.games[id] = game

	return game.Clone(), nil
}

func (that *memoryGame) Delete(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)

	return nil
}

func (that *memoryGame) ListRecent(_ context.Context, limit int) ([]*entity.Game, error) {
	if limit <= 0 {
		return []*entity.Game{}, nil
	}

	games := that.snapshot()

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})

	if len(games) > limit {
		games = games[:limit]
	}

	return games, nil
}

func (that *memoryGame) Stats(_ context.Context) (entity.GameStats, error) {
	return entity.ComputeStats(that.snapshot()), nil
}

func (that *memoryGame) Leaderboard(_ context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	return entity.ComputeLeaderboard(that.snapshot(), limit), nil
}

func (that *memoryGame) snapshot() []*entity.Game {
	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]*entity.Game, 0, len(that.games))
	for _, game := range that.games {
		games = append(games, game.Clone())
	}

	return games
}
