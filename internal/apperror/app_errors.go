package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotActive     = errors.New("game is not active")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotJoinable   = errors.New("game is not available for joining")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidMove       = errors.New("invalid move")
	ErrNotAPlayer        = errors.New("not a player in this game")
	ErrNicknameRequired  = errors.New("player nickname is required")
	ErrNicknameTooLong   = errors.New("player nickname is too long")
	ErrPersistenceFailed = errors.New("failed to persist game")

	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// ClientMessage returns the text shown to a client for err.
// Anything not listed is reported as an internal error.
func ClientMessage(err error) string {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return "Game not found"
	case errors.Is(err, ErrGameNotActive), errors.Is(err, ErrGameFinished):
		return "Game is not active"
	case errors.Is(err, ErrGameNotJoinable):
		return "Game is not available for joining"
	case errors.Is(err, ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, ErrInvalidMove):
		return "Invalid move"
	case errors.Is(err, ErrNotAPlayer):
		return "You are not a player in this game"
	case errors.Is(err, ErrNicknameRequired):
		return "Player nickname is required"
	case errors.Is(err, ErrNicknameTooLong):
		return "Player nickname is too long"
	case errors.Is(err, ErrPersistenceFailed):
		return "Failed to save game"
	case errors.Is(err, ErrMalformedMessage):
		return "Invalid message format"
	case errors.Is(err, ErrUnknownMessageType):
		return "Unknown message type"
	default:
		return "Internal server error"
	}
}
