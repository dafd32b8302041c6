package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
)

type repoFactory func(t *testing.T) (context.Context, GameRepository)

func strPtr(s string) *string {
	return &s
}

func playingGame(t *testing.T, ctx context.Context, repo GameRepository, player1, player2 string) *entity.Game {
	t.Helper()

	game, err := repo.Create(ctx, entity.NewGame(player1))
	require.NoError(t, err)

	game, err = repo.Update(ctx, game.ID, entity.Seat(player2))
	require.NoError(t, err)

	return game
}

// testGameRepository runs the behaviour every store must share.
func testGameRepository(t *testing.T, newRepo repoFactory) {
	t.Run("Create assigns id, timestamp and defaults", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a new game for Ada
		game := entity.NewGame("Ada")

		// When: Create is called
		created, err := repo.Create(ctx, game)

		// Then: the store fills id and createdAt and keeps the input untouched
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, entity.StatusWaiting, created.Status)
		assert.Equal(t, entity.PlayerX, created.CurrentTurn)
		assert.Equal(t, entity.Board{}, created.BoardState)
		assert.Empty(t, game.ID)
	})

	t.Run("Get returns the stored game", func(t *testing.T) {
		ctx, repo := newRepo(t)

		created, err := repo.Create(ctx, entity.NewGame("Ada"))
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Ada", got.Player1Nickname)
		assert.Nil(t, got.Player2Nickname)
		assert.Nil(t, got.Winner)
		assert.Nil(t, got.CompletedAt)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("Get of unknown id returns ErrGameNotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		got, err := repo.Get(ctx, "no-such-game")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, got)
	})

	t.Run("Update applies only the given fields", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a playing game
		game := playingGame(t, ctx, repo, "Ada", "Grace")

		// When: a move is recorded
		board := entity.Board{4: entity.PlayerX}
		turn := entity.PlayerO
		updated, err := repo.Update(ctx, game.ID, entity.GameUpdate{BoardState: &board, CurrentTurn: &turn})

		// Then: board and turn change, seats and status stay
		require.NoError(t, err)
		assert.Equal(t, board, updated.BoardState)
		assert.Equal(t, entity.PlayerO, updated.CurrentTurn)
		assert.Equal(t, entity.StatusPlaying, updated.Status)
		require.NotNil(t, updated.Player2Nickname)
		assert.Equal(t, "Grace", *updated.Player2Nickname)

		stored, err := repo.Get(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, board, stored.BoardState)
	})

	t.Run("Update of unknown id returns ErrGameNotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		turn := entity.PlayerO
		_, err := repo.Update(ctx, "no-such-game", entity.GameUpdate{CurrentTurn: &turn})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Winner is written only once", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := playingGame(t, ctx, repo, "Ada", "Grace")

		_, err := repo.Update(ctx, game.ID, entity.Completion(entity.WinnerPlayer1, time.Now().UTC()))
		require.NoError(t, err)

		_, err = repo.Update(ctx, game.ID, entity.Completion(entity.WinnerPlayer2, time.Now().UTC()))
		require.ErrorIs(t, err, apperror.ErrGameFinished)

		stored, err := repo.Get(ctx, game.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Winner)
		assert.Equal(t, entity.WinnerPlayer1, *stored.Winner)
		assert.Equal(t, entity.StatusCompleted, stored.Status)
		assert.NotNil(t, stored.CompletedAt)
	})

	t.Run("Concurrent completions leave exactly one winner", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := playingGame(t, ctx, repo, "Ada", "Grace")

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)

		for _, winner := range []string{entity.WinnerPlayer1, entity.WinnerPlayer2, entity.WinnerDraw} {
			wg.Add(1)
			go func() {
				defer wg.Done()

				if _, err := repo.Update(ctx, game.ID, entity.Completion(winner, time.Now().UTC())); err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
	})

	t.Run("Only one of two concurrent joiners gets the seat", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game, err := repo.Create(ctx, entity.NewGame("Ada"))
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]error, 2)

		for i, nickname := range []string{"Grace", "Linus"} {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, results[i] = repo.Update(ctx, game.ID, entity.Seat(nickname))
			}()
		}
		wg.Wait()

		failures := 0
		for _, err := range results {
			if err != nil {
				require.ErrorIs(t, err, apperror.ErrGameNotJoinable)
				failures++
			}
		}
		assert.Equal(t, 1, failures)
	})

	t.Run("Delete removes the game and is idempotent", func(t *testing.T) {
		ctx, repo := newRepo(t)

		created, err := repo.Create(ctx, entity.NewGame("Ada"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))
		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.Get(ctx, created.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		recent, err := repo.ListRecent(ctx, 50)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("ListRecent returns newest first and honours the limit", func(t *testing.T) {
		ctx, repo := newRepo(t)

		base := time.Now().UTC().Add(-time.Hour)
		for i := range 5 {
			game := entity.NewGame(fmt.Sprintf("player-%d", i))
			game.CreatedAt = base.Add(time.Duration(i) * time.Minute)

			_, err := repo.Create(ctx, game)
			require.NoError(t, err)
		}

		recent, err := repo.ListRecent(ctx, 3)

		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "player-4", recent[0].Player1Nickname)
		assert.Equal(t, "player-3", recent[1].Player1Nickname)
		assert.Equal(t, "player-2", recent[2].Player1Nickname)
	})

	t.Run("Stats and Leaderboard count completed games", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: Ada beats Grace twice, Grace and Linus draw, and one game is still waiting
		for _, result := range []struct {
			player1, player2, winner string
		}{
			{"Ada", "Grace", entity.WinnerPlayer1},
			{"Grace", "Ada", entity.WinnerPlayer2},
			{"Grace", "Linus", entity.WinnerDraw},
		} {
			game := playingGame(t, ctx, repo, result.player1, result.player2)
			_, err := repo.Update(ctx, game.ID, entity.Completion(result.winner, time.Now().UTC()))
			require.NoError(t, err)
		}

		_, err := repo.Create(ctx, entity.NewGame("Ken"))
		require.NoError(t, err)

		// When: stats and leaderboard are read
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)

		leaderboard, err := repo.Leaderboard(ctx, 50)
		require.NoError(t, err)

		// Then: only completed games count and only winners are ranked
		assert.Equal(t, entity.GameStats{TotalGames: 3, Player1Wins: 1, Player2Wins: 1, Draws: 1}, stats)
		assert.Equal(t, []entity.LeaderboardEntry{{PlayerNickname: "Ada", Wins: 2, Games: 2}}, leaderboard)
	})

	t.Run("Returned games are not shared with the store", func(t *testing.T) {
		ctx, repo := newRepo(t)

		created, err := repo.Create(ctx, entity.NewGame("Ada"))
		require.NoError(t, err)

		created.Player1Nickname = "Mallory"
		created.Player2Nickname = strPtr("Eve")

		stored, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", stored.Player1Nickname)
		assert.Nil(t, stored.Player2Nickname)
	})
}
