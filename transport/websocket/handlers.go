package websocket

import (
	"context"
)

func (that *Server) handleJoin(ctx context.Context, message *Message, conn *Connection) error {
	return that.coordinator.Join(ctx, message.GameID, message.PlayerNickname, conn)
}

func (that *Server) handleMove(ctx context.Context, message *Message, conn *Connection) error {
	return that.coordinator.Move(ctx, message.GameID, message.cell(), message.PlayerSymbol, conn)
}

func (that *Server) handleForfeit(ctx context.Context, message *Message, conn *Connection) error {
	return that.coordinator.Forfeit(ctx, message.GameID, message.PlayerNickname, conn)
}
