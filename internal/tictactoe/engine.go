// Package tictactoe holds the pure board rules. Nothing here touches shared state.
package tictactoe

import "github.com/rocketscienceinc/tictactoe-live/internal/entity"

type Result string

const (
	ResultNone Result = ""
	ResultX    Result = Result(entity.PlayerX)
	ResultO    Result = Result(entity.PlayerO)
	ResultDraw Result = "Draw"
)

// WinCombos lists rows, then columns, then diagonals. The order decides ties.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func IsValidMove(board entity.Board, cell int) bool {
	if cell < 0 || cell >= entity.BoardSize {
		return false
	}

	return board[cell] == entity.EmptyCell
}

// ApplyMove returns a copy of board with cell set. The caller validates first.
func ApplyMove(board entity.Board, cell int, symbol entity.Symbol) entity.Board {
	board[cell] = symbol
	return board
}

func ToggleTurn(symbol entity.Symbol) entity.Symbol {
	if symbol == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}

func CheckWinner(board entity.Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return Result(a)
		}
	}

	// the game continues while any cell is free
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return ResultNone
		}
	}

	return ResultDraw
}

// WinnerDisplay maps a terminal result to the stored winner label.
func WinnerDisplay(result Result) string {
	switch result {
	case ResultX:
		return entity.WinnerPlayer1
	case ResultO:
		return entity.WinnerPlayer2
	case ResultDraw:
		return entity.WinnerDraw
	default:
		return ""
	}
}
