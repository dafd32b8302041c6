package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
	"github.com/rocketscienceinc/tictactoe-live/internal/metrics"
)

// Inbound message types.
const (
	messageJoin    = "join"
	messageMove    = "move"
	messageForfeit = "forfeit"
)

// Message is the flat inbound frame. Fields unused by a type are ignored.
type Message struct {
	Type           string        `json:"type"`
	GameID         string        `json:"gameId"`
	PlayerNickname string        `json:"playerNickname"`
	CellIndex      *int          `json:"cellIndex"`
	PlayerSymbol   entity.Symbol `json:"playerSymbol"`
}

// cell returns the requested index, or -1 when the client sent none so it fails validation.
func (that *Message) cell() int {
	if that.CellIndex == nil {
		return -1
	}

	return *that.CellIndex
}

func decodeMessage(data []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	if message.Type == "" {
		return nil, fmt.Errorf("%w: missing type", apperror.ErrMalformedMessage)
	}

	return &message, nil
}

// processMessage decodes one frame and routes it by type. Panics in a handler are turned into
// an internal error for this connection only.
func (that *Server) processMessage(ctx context.Context, conn *Connection, data []byte) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("handler panicked: %v", recovered)
			_ = conn.Send(entity.ErrorEvent(apperror.ClientMessage(err)))
		}
	}()

	message, err := decodeMessage(data)
	if err != nil {
		_ = conn.Send(entity.ErrorEvent(apperror.ClientMessage(err)))
		return err
	}

	handler, ok := that.handlers[message.Type]
	if !ok {
		that.recorder.MessageReceived(metrics.MessageUnknown)

		err = fmt.Errorf("%w: %q", apperror.ErrUnknownMessageType, message.Type)
		_ = conn.Send(entity.ErrorEvent(apperror.ClientMessage(err)))
		return err
	}

	that.recorder.MessageReceived(message.Type)

	return handler(ctx, message, conn)
}
