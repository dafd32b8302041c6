package entity

// Outbound event kinds pushed to room members.
const (
	EventGameUpdate         = "gameUpdate"
	EventGameStarted        = "gameStarted"
	EventPlayerDisconnected = "playerDisconnected"
	EventError              = "error"
)

// Event is the flat, type-tagged frame sent to clients.
type Event struct {
	Type    string `json:"type"`
	Game    *Game  `json:"game,omitempty"`
	GameID  string `json:"gameId,omitempty"`
	Message string `json:"message,omitempty"`
}

func GameEvent(kind string, game *Game) Event {
	return Event{Type: kind, Game: game}
}

func DisconnectedEvent(gameID string) Event {
	return Event{Type: EventPlayerDisconnected, GameID: gameID}
}

func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}
