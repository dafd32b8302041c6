package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
	"github.com/rocketscienceinc/tictactoe-live/internal/repository"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-live/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNormalizeNickname(t *testing.T) {
	t.Run("Trims surrounding space", func(t *testing.T) {
		nickname, err := NormalizeNickname("  Ada  ")

		require.NoError(t, err)
		assert.Equal(t, "Ada", nickname)
	})

	t.Run("Rejects blank nicknames", func(t *testing.T) {
		_, err := NormalizeNickname("   ")

		require.ErrorIs(t, err, apperror.ErrNicknameRequired)
	})

	t.Run("Accepts exactly the limit and rejects one more", func(t *testing.T) {
		_, err := NormalizeNickname(strings.Repeat("é", MaxNicknameLength))
		require.NoError(t, err)

		_, err = NormalizeNickname(strings.Repeat("a", MaxNicknameLength+1))
		require.ErrorIs(t, err, apperror.ErrNicknameTooLong)
	})
}

func TestGameManager_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Create then join moves the game to playing", func(t *testing.T) {
		// Given: a manager over an in-memory store
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository(), mockedUseCase.NewMockroomCloser(t))

		// When: Ada starts a game
		game, err := manager.Start(ctx, "Ada", "")

		// Then: it waits for a second player
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWaiting, game.Status)
		assert.Nil(t, game.Player2Nickname)

		// When: Grace joins by id
		joined, err := manager.Start(ctx, "Grace", game.ID)

		// Then: the game is playing with X to move
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPlaying, joined.Status)
		require.NotNil(t, joined.Player2Nickname)
		assert.Equal(t, "Grace", *joined.Player2Nickname)
		assert.Equal(t, entity.PlayerX, joined.CurrentTurn)
	})

	t.Run("Joining a full game is rejected", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository(), mockedUseCase.NewMockroomCloser(t))

		game, err := manager.Start(ctx, "Ada", "")
		require.NoError(t, err)
		_, err = manager.Start(ctx, "Grace", game.ID)
		require.NoError(t, err)

		_, err = manager.Start(ctx, "Linus", game.ID)

		require.ErrorIs(t, err, apperror.ErrGameNotJoinable)
	})

	t.Run("Joining an unknown game returns ErrGameNotFound", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockedUseCase.NewMockroomCloser(t))

		mockGameRepo.EXPECT().
			Update(mock.Anything, "missing", mock.AnythingOfType("entity.GameUpdate")).
			Return(nil, apperror.ErrGameNotFound).
			Once()

		_, err := manager.Start(ctx, "Grace", "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Blank nickname never reaches the store", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockedUseCase.NewMockroomCloser(t))

		_, err := manager.Start(ctx, " ", "")

		require.ErrorIs(t, err, apperror.ErrNicknameRequired)
	})

	t.Run("Store failures are wrapped", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockedUseCase.NewMockroomCloser(t))

		mockGameRepo.EXPECT().
			Create(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil, errRedisDown).
			Once()

		_, err := manager.Start(ctx, "Ada", "")

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("ListRecent and Leaderboard ask for fifty rows", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockedUseCase.NewMockroomCloser(t))

		mockGameRepo.EXPECT().
			ListRecent(mock.Anything, RecentGamesLimit).
			Return([]*entity.Game{{ID: "g1"}}, nil).
			Once()
		mockGameRepo.EXPECT().
			Leaderboard(mock.Anything, LeaderboardLimit).
			Return([]entity.LeaderboardEntry{{PlayerNickname: "Ada", Wins: 1, Games: 1}}, nil).
			Once()

		games, err := manager.ListRecent(ctx)
		require.NoError(t, err)
		assert.Len(t, games, 1)

		entries, err := manager.Leaderboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ada", entries[0].PlayerNickname)
	})

	t.Run("GetGame passes not-found through", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockedUseCase.NewMockroomCloser(t))

		mockGameRepo.EXPECT().
			Get(mock.Anything, "missing").
			Return(nil, apperror.ErrGameNotFound).
			Once()

		_, err := manager.GetGame(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Stats errors are wrapped", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockedUseCase.NewMockroomCloser(t))

		mockGameRepo.EXPECT().
			Stats(mock.Anything).
			Return(entity.GameStats{}, errRedisDown).
			Once()

		_, err := manager.Stats(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_DeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the record and closes the room", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockRooms := mockedUseCase.NewMockroomCloser(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockRooms)

		mockGameRepo.EXPECT().Delete(mock.Anything, "g1").Return(nil).Once()
		mockRooms.EXPECT().CloseRoom("g1").Return().Once()

		require.NoError(t, manager.DeleteGame(ctx, "g1"))
	})

	t.Run("Store failure keeps the room", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockRooms := mockedUseCase.NewMockroomCloser(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockRooms)

		mockGameRepo.EXPECT().Delete(mock.Anything, "g1").Return(errRedisDown).Once()

		err := manager.DeleteGame(ctx, "g1")

		require.ErrorIs(t, err, errRedisDown)
		mockRooms.AssertNotCalled(t, "CloseRoom", "g1")
	})
}
