package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
	"github.com/rocketscienceinc/tictactoe-live/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-live/internal/repository"
	"github.com/rocketscienceinc/tictactoe-live/internal/usecase"
)

type fakeRooms struct {
	closed []string
}

func (that *fakeRooms) CloseRoom(gameID string) {
	that.closed = append(that.closed, gameID)
}

type fixedCounter int

func (that fixedCounter) Count() int {
	return int(that)
}

// brokenStore fails every read so the 500 paths can be checked.
type brokenStore struct {
	repository.GameRepository
}

func (brokenStore) ListRecent(context.Context, int) ([]*entity.Game, error) {
	return nil, errors.New("connection refused")
}

type testEnv struct {
	handler http.Handler
	store   repository.GameRepository
	rooms   *fakeRooms
}

func setupTestServer(t *testing.T, store repository.GameRepository) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rooms := &fakeRooms{}
	manager := usecase.NewGameManager(logger, store, rooms)

	return &testEnv{
		handler: New(logger, manager, fixedCounter(3), metrics.NewRecorder()).Handler(),
		store:   store,
		rooms:   rooms,
	}
}

func (that *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	recorder := httptest.NewRecorder()
	that.handler.ServeHTTP(recorder, httptest.NewRequest(method, path, reader))

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(bytes.NewReader(recorder.Body.Bytes())).Decode(&value))

	return value
}

func TestServer_Ping(t *testing.T) {
	env := setupTestServer(t, repository.NewMemoryGameRepository())

	response := env.do(t, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "pong", response.Body.String())
}

func TestServer_StartGame(t *testing.T) {
	t.Run("Create then join", func(t *testing.T) {
		env := setupTestServer(t, repository.NewMemoryGameRepository())

		// When: Ada starts without a game id
		response := env.do(t, http.MethodPost, "/api/games/start", `{"playerNickname":"Ada"}`)

		// Then: a waiting game comes back
		require.Equal(t, http.StatusOK, response.Code)
		created := decode[entity.Game](t, response)
		assert.Equal(t, entity.StatusWaiting, created.Status)

		// When: Grace joins it by id
		response = env.do(t, http.MethodPost, "/api/games/start", `{"playerNickname":"Grace","gameId":"`+created.ID+`"}`)

		// Then: the game is playing
		require.Equal(t, http.StatusOK, response.Code)
		joined := decode[entity.Game](t, response)
		assert.Equal(t, entity.StatusPlaying, joined.Status)
		require.NotNil(t, joined.Player2Nickname)
		assert.Equal(t, "Grace", *joined.Player2Nickname)

		// When: a third player tries the same id
		response = env.do(t, http.MethodPost, "/api/games/start", `{"playerNickname":"Linus","gameId":"`+created.ID+`"}`)

		// Then: it is refused
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Equal(t, "Game is not available for joining", decode[errorResponse](t, response).Error)
	})

	t.Run("Unknown game id is a 404", func(t *testing.T) {
		env := setupTestServer(t, repository.NewMemoryGameRepository())

		response := env.do(t, http.MethodPost, "/api/games/start", `{"playerNickname":"Grace","gameId":"missing"}`)

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "Game not found", decode[errorResponse](t, response).Error)
	})

	t.Run("Nickname problems are a 400", func(t *testing.T) {
		env := setupTestServer(t, repository.NewMemoryGameRepository())

		blank := env.do(t, http.MethodPost, "/api/games/start", `{"playerNickname":"  "}`)
		long := env.do(t, http.MethodPost, "/api/games/start", `{"playerNickname":"`+strings.Repeat("a", 21)+`"}`)
		garbage := env.do(t, http.MethodPost, "/api/games/start", `{`)

		assert.Equal(t, http.StatusBadRequest, blank.Code)
		assert.Equal(t, "Player nickname is required", decode[errorResponse](t, blank).Error)
		assert.Equal(t, http.StatusBadRequest, long.Code)
		assert.Equal(t, "Player nickname is too long", decode[errorResponse](t, long).Error)
		assert.Equal(t, http.StatusBadRequest, garbage.Code)
	})
}

func TestServer_Games(t *testing.T) {
	ctx := context.Background()

	t.Run("Get, list and delete", func(t *testing.T) {
		env := setupTestServer(t, repository.NewMemoryGameRepository())

		game, err := env.store.Create(ctx, entity.NewGame("Ada"))
		require.NoError(t, err)

		got := env.do(t, http.MethodGet, "/api/games/"+game.ID, "")
		require.Equal(t, http.StatusOK, got.Code)
		assert.Equal(t, game.ID, decode[entity.Game](t, got).ID)

		list := env.do(t, http.MethodGet, "/api/games", "")
		require.Equal(t, http.StatusOK, list.Code)
		assert.Len(t, decode[[]entity.Game](t, list), 1)

		deleted := env.do(t, http.MethodDelete, "/api/games/"+game.ID, "")
		require.Equal(t, http.StatusOK, deleted.Code)
		assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, deleted))
		assert.Equal(t, []string{game.ID}, env.rooms.closed)

		missing := env.do(t, http.MethodGet, "/api/games/"+game.ID, "")
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})

	t.Run("Empty store lists an empty array", func(t *testing.T) {
		env := setupTestServer(t, repository.NewMemoryGameRepository())

		response := env.do(t, http.MethodGet, "/api/games", "")

		require.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `[]`, response.Body.String())
	})

	t.Run("Store failure is a 500 with the route message", func(t *testing.T) {
		env := setupTestServer(t, brokenStore{})

		response := env.do(t, http.MethodGet, "/api/games", "")

		assert.Equal(t, http.StatusInternalServerError, response.Code)
		assert.Equal(t, "Failed to fetch games", decode[errorResponse](t, response).Error)
	})
}

func TestServer_Aggregates(t *testing.T) {
	ctx := context.Background()
	env := setupTestServer(t, repository.NewMemoryGameRepository())

	// Given: Ada has beaten Grace once
	game, err := env.store.Create(ctx, entity.NewGame("Ada"))
	require.NoError(t, err)
	_, err = env.store.Update(ctx, game.ID, entity.Seat("Grace"))
	require.NoError(t, err)
	_, err = env.store.Update(ctx, game.ID, entity.Completion(entity.WinnerPlayer1, time.Now().UTC()))
	require.NoError(t, err)

	stats := env.do(t, http.MethodGet, "/api/stats", "")
	leaderboard := env.do(t, http.MethodGet, "/api/leaderboard", "")
	online := env.do(t, http.MethodGet, "/api/online-count", "")

	assert.JSONEq(t, `{"totalGames":1,"player1Wins":1,"player2Wins":0,"draws":0}`, stats.Body.String())
	assert.JSONEq(t, `[{"playerNickname":"Ada","wins":1,"games":1}]`, leaderboard.Body.String())
	assert.JSONEq(t, `{"count":3}`, online.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	env := setupTestServer(t, repository.NewMemoryGameRepository())

	env.do(t, http.MethodGet, "/api/games/some-id", "")
	response := env.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `tictactoe_http_requests_total{method="GET",path="GET /api/games/{id}",status="404"} 1`)
}

func TestServer_MetricsMethodLabel(t *testing.T) {
	env := setupTestServer(t, repository.NewMemoryGameRepository())

	// When: a client sends a method nobody routes
	env.do(t, "BREW", "/coffee", "")
	response := env.do(t, http.MethodGet, "/metrics", "")

	// Then: the raw method never becomes a label value
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `tictactoe_http_requests_total{method="other",path="unmatched",status="404"} 1`)
	assert.NotContains(t, response.Body.String(), `method="BREW"`)
}
