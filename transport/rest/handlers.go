package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
)

type startRequest struct {
	PlayerNickname string `json:"playerNickname"`
	GameID         string `json:"gameId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.games.ListRecent(r.Context())
	if err != nil {
		that.fail(w, "listGames", err, "Failed to fetch games")
		return
	}

	that.writeJSON(w, http.StatusOK, games)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.fail(w, "getGame", err, "Failed to fetch game")
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) startGame(w http.ResponseWriter, r *http.Request) {
	var request startRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	game, err := that.games.Start(r.Context(), request.PlayerNickname, request.GameID)
	if err != nil {
		that.fail(w, "startGame", err, "Failed to create game")
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.fail(w, "deleteGame", err, "Failed to delete game")
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (that *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.games.Stats(r.Context())
	if err != nil {
		that.fail(w, "stats", err, "Failed to fetch stats")
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := that.games.Leaderboard(r.Context())
	if err != nil {
		that.fail(w, "leaderboard", err, "Failed to fetch leaderboard")
		return
	}

	that.writeJSON(w, http.StatusOK, entries)
}

func (that *Server) onlineCount(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, map[string]int{"count": that.online.Count()})
}

// fail maps domain errors to 4xx with their client text; everything else is a 500 with fallback.
func (that *Server) fail(w http.ResponseWriter, method string, err error, fallback string) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ClientMessage(err)})
	case errors.Is(err, apperror.ErrGameNotJoinable),
		errors.Is(err, apperror.ErrNicknameRequired),
		errors.Is(err, apperror.ErrNicknameTooLong):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ClientMessage(err)})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
