package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
)

type (
	Status string
	Symbol string
)

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"

	PlayerX   Symbol = "X"
	PlayerO   Symbol = "O"
	EmptyCell Symbol = ""

	WinnerPlayer1 = "Player 1"
	WinnerPlayer2 = "Player 2"
	WinnerDraw    = "Draw"

	BoardSize = 9
)

// Board is the 3x3 grid in row-major order. Empty cells are encoded as JSON null.
type Board [BoardSize]Symbol

func (that Board) MarshalJSON() ([]byte, error) {
	cells := make([]*string, BoardSize)
	for i, cell := range that {
		if cell != EmptyCell {
			mark := string(cell)
			cells[i] = &mark
		}
	}

	return json.Marshal(cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("board must have %d cells, got %d", BoardSize, len(cells))
	}

	for i, cell := range cells {
		that[i] = EmptyCell
		if cell != nil {
			that[i] = Symbol(*cell)
		}
	}

	return nil
}

type Game struct {
	ID              string     `json:"id"`
	Player1Nickname string     `json:"player1Nickname"`
	Player2Nickname *string    `json:"player2Nickname"`
	BoardState      Board      `json:"boardState"`
	CurrentTurn     Symbol     `json:"currentTurn"`
	Winner          *string    `json:"winner"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// NewGame returns a waiting game owned by player1. The store assigns the ID.
func NewGame(player1 string) *Game {
	return &Game{
		Player1Nickname: player1,
		CurrentTurn:     PlayerX,
		Status:          StatusWaiting,
	}
}

// Clone returns a deep copy so callers never share pointer fields.
func (that *Game) Clone() *Game {
	clone := *that

	if that.Player2Nickname != nil {
		nickname := *that.Player2Nickname
		clone.Player2Nickname = &nickname
	}

	if that.Winner != nil {
		winner := *that.Winner
		clone.Winner = &winner
	}

	if that.CompletedAt != nil {
		completedAt := *that.CompletedAt
		clone.CompletedAt = &completedAt
	}

	return &clone
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsCompleted() bool {
	return that.Status == StatusCompleted
}

// IsJoinable reports whether a second player may still take the O seat.
func (that *Game) IsJoinable() bool {
	return that.IsWaiting() && that.Player2Nickname == nil
}

func (that *Game) ConfirmPlayingState() error {
	if !that.IsPlaying() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameNotActive, that.Status)
	}

	return nil
}

// SymbolFor returns the mark bound to a nickname, if the nickname is seated in this game.
func (that *Game) SymbolFor(nickname string) (Symbol, bool) {
	switch {
	case nickname == that.Player1Nickname:
		return PlayerX, true
	case that.Player2Nickname != nil && nickname == *that.Player2Nickname:
		return PlayerO, true
	default:
		return EmptyCell, false
	}
}

// BindableSymbol returns the mark a connection joining as nickname is locked to.
// A nickname holding both seats binds nothing, since the two seats cannot be told apart.
func (that *Game) BindableSymbol(nickname string) Symbol {
	if that.Player2Nickname != nil && that.Player1Nickname == *that.Player2Nickname {
		return EmptyCell
	}

	symbol, _ := that.SymbolFor(nickname)

	return symbol
}

// ForfeitWinner returns the winner display for the opponent of the forfeiting nickname.
func (that *Game) ForfeitWinner(nickname string) (string, error) {
	symbol, ok := that.SymbolFor(nickname)
	if !ok {
		return "", fmt.Errorf("%w: %s", apperror.ErrNotAPlayer, nickname)
	}

	if symbol == PlayerX {
		return WinnerPlayer2, nil
	}

	return WinnerPlayer1, nil
}

// GameUpdate is a partial update. Nil fields are left untouched.
type GameUpdate struct {
	Player2Nickname *string
	BoardState      *Board
	CurrentTurn     *Symbol
	Winner          *string
	Status          *Status
	CompletedAt     *time.Time

	// RequireJoinable rejects the update unless the stored game still has a free O seat.
	RequireJoinable bool
}

// Apply mutates game in place. A winner can be recorded only once.
func (that GameUpdate) Apply(game *Game) error {
	if that.RequireJoinable && !game.IsJoinable() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameNotJoinable, game.Status)
	}

	if that.Winner != nil && game.Winner != nil {
		return fmt.Errorf("%w: winner already %q", apperror.ErrGameFinished, *game.Winner)
	}

	if that.Player2Nickname != nil {
		nickname := *that.Player2Nickname
		game.Player2Nickname = &nickname
	}

	if that.BoardState != nil {
		game.BoardState = *that.BoardState
	}

	if that.CurrentTurn != nil {
		game.CurrentTurn = *that.CurrentTurn
	}

	if that.Winner != nil {
		winner := *that.Winner
		game.Winner = &winner
	}

	if that.Status != nil {
		game.Status = *that.Status
	}

	if that.CompletedAt != nil {
		completedAt := *that.CompletedAt
		game.CompletedAt = &completedAt
	}

	return nil
}

// Seat builds the update that gives the O seat to nickname and starts play.
func Seat(nickname string) GameUpdate {
	status := StatusPlaying

	return GameUpdate{
		Player2Nickname: &nickname,
		Status:          &status,
		RequireJoinable: true,
	}
}

// Completion builds the update that moves a game to its terminal state.
func Completion(winner string, at time.Time) GameUpdate {
	status := StatusCompleted

	return GameUpdate{
		Winner:      &winner,
		Status:      &status,
		CompletedAt: &at,
	}
}
