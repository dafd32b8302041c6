package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
)

const writeTimeout = 5 * time.Second

var (
	errConnectionClosed = errors.New("connection closed")
	errSendBufferFull   = errors.New("send buffer full")
)

// Connection is one accepted socket. Outbound events go through a bounded queue drained by writeLoop,
// so Send never blocks the caller.
type Connection struct {
	id     string
	socket *websocket.Conn

	send      chan entity.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(socket *websocket.Conn, sendBuffer int) *Connection {
	return &Connection{
		id:     uuid.NewString(),
		socket: socket,
		send:   make(chan entity.Event, sendBuffer),
		done:   make(chan struct{}),
	}
}

func (that *Connection) ID() string {
	return that.id
}

// Send queues event for delivery. A full queue means the peer is not reading, so it is dropped.
func (that *Connection) Send(event entity.Event) error {
	select {
	case <-that.done:
		return errConnectionClosed
	default:
	}

	select {
	case that.send <- event:
		return nil
	default:
		that.close(websocket.StatusPolicyViolation, "too slow")
		return errSendBufferFull
	}
}

func (that *Connection) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-that.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case event := <-that.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, that.socket, event)
			cancel()

			if err != nil {
				that.close(websocket.StatusInternalError, "write failed")
				return err
			}
		}
	}
}

// close is safe to call more than once and from any goroutine.
func (that *Connection) close(code websocket.StatusCode, reason string) {
	that.closeOnce.Do(func() {
		close(that.done)

		// the close handshake can take seconds; the reader notices the socket going away
		go func() {
			_ = that.socket.Close(code, reason)
		}()
	})
}
