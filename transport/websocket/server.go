package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
	"github.com/rocketscienceinc/tictactoe-live/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-live/internal/room"
)

const (
	readLimit         = 4096
	defaultSendBuffer = 16
)

type coordinator interface {
	Join(ctx context.Context, gameID, nickname string, conn room.Conn) error
	Move(ctx context.Context, gameID string, cell int, symbol entity.Symbol, conn room.Conn) error
	Forfeit(ctx context.Context, gameID, nickname string, conn room.Conn) error
	Disconnect(conn room.Conn)
}

type handlerFunc func(ctx context.Context, message *Message, conn *Connection) error

type Options struct {
	SendBuffer     int
	OriginPatterns []string
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	registry    *Registry
	recorder    *metrics.Recorder
	options     Options

	handlers map[string]handlerFunc

	mu  sync.Mutex
	srv *http.Server
}

func New(logger *slog.Logger, coordinator coordinator, registry *Registry, recorder *metrics.Recorder, options Options) *Server {
	if options.SendBuffer <= 0 {
		options.SendBuffer = defaultSendBuffer
	}

	server := &Server{
		logger:      logger.With("component", "websocket"),
		coordinator: coordinator,
		registry:    registry,
		recorder:    recorder,
		options:     options,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[messageJoin] = server.handleJoin
	server.handlers[messageMove] = server.handleMove
	server.handlers[messageForfeit] = server.handleForfeit

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", that.serveWebSocket)

	return mux
}

// Start - starts WebSocket server. It blocks until Shutdown is called.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	that.mu.Lock()
	that.srv = srv
	that.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting sockets and closes the live ones.
func (that *Server) Shutdown(ctx context.Context) error {
	that.registry.CloseAll()

	that.mu.Lock()
	srv := that.srv
	that.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown websocket server: %w", err)
	}

	return nil
}

func (that *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWebSocket")

	socket, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: that.options.OriginPatterns,
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	socket.SetReadLimit(readLimit)

	conn := newConnection(socket, that.options.SendBuffer)
	log = log.With("conn_id", conn.ID())

	that.registry.Add(conn)
	that.recorder.ConnectionOpened()
	log.Info("websocket connection established")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		if err := conn.writeLoop(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Debug("writer stopped", "error", err)
		}
	}()

	that.readLoop(ctx, conn)

	// room cleanup must finish before the socket is released
	that.coordinator.Disconnect(conn)
	that.registry.Remove(conn.ID())
	that.recorder.ConnectionClosed()
	conn.close(websocket.StatusNormalClosure, "")

	log.Info("websocket connection closed")
}

func (that *Server) readLoop(ctx context.Context, conn *Connection) {
	log := that.logger.With("method", "readLoop", "conn_id", conn.ID())

	for {
		msgType, data, err := conn.socket.Read(ctx)
		if err != nil {
			log.Debug("read stopped", "status", websocket.CloseStatus(err), "error", err)
			return
		}

		if msgType != websocket.MessageText {
			log.Debug("ignoring non-text frame")
			continue
		}

		if err = that.processMessage(ctx, conn, data); err != nil {
			log.Debug("message rejected", "error", err)
		}
	}
}
