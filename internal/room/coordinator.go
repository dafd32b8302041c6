// Package room tracks which live connections watch which game and serializes every
// state change of a game behind a per-game lock.
package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
	"github.com/rocketscienceinc/tictactoe-live/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-live/internal/tictactoe"
)

const DefaultTeardownDelay = 5 * time.Second

// Conn is one client channel as seen by the coordinator. Send must not block.
type Conn interface {
	ID() string
	Send(event entity.Event) error
}

type gameStore interface {
	Get(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, update entity.GameUpdate) (*entity.Game, error)
}

type member struct {
	conn   Conn
	symbol entity.Symbol
}

type room struct {
	members  map[string]*member
	teardown *time.Timer
}

type Coordinator struct {
	logger   *slog.Logger
	store    gameStore
	recorder *metrics.Recorder

	teardownDelay time.Duration
	now           func() time.Time

	locks *keyedMutex

	mu          sync.RWMutex
	rooms       map[string]*room
	memberships map[string]map[string]struct{}
	closed      bool
}

func NewCoordinator(logger *slog.Logger, store gameStore, recorder *metrics.Recorder, teardownDelay time.Duration) *Coordinator {
	if teardownDelay <= 0 {
		teardownDelay = DefaultTeardownDelay
	}

	return &Coordinator{
		logger:   logger.With("component", "room-coordinator"),
		store:    store,
		recorder: recorder,

		teardownDelay: teardownDelay,
		now: func() time.Time {
			return time.Now().UTC()
		},

		locks:       newKeyedMutex(),
		rooms:       make(map[string]*room),
		memberships: make(map[string]map[string]struct{}),
	}
}

// Join adds conn to the game's room and pushes the current state to every member.
// Joining twice with the same conn does not grow the room.
func (that *Coordinator) Join(ctx context.Context, gameID, nickname string, conn Conn) error {
	log := that.logger.With("method", "Join", "game_id", gameID, "conn_id", conn.ID())

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.store.Get(ctx, gameID)
	if err != nil {
		return that.reject(log, conn, err)
	}

	symbol := game.BindableSymbol(nickname)
	that.register(gameID, conn, symbol)

	kind := entity.EventGameUpdate
	if game.IsPlaying() {
		kind = entity.EventGameStarted
	}

	that.broadcast(gameID, entity.GameEvent(kind, game))

	// late joiners of a finished game must not keep the room alive
	if game.IsCompleted() {
		that.scheduleTeardown(gameID)
	}

	log.Debug("connection joined room", "symbol", symbol, "status", game.Status)

	return nil
}

// Move validates and applies one move. A connection bound to a seat always plays that seat's
// symbol; declared is used only for connections that never joined as a player.
func (that *Coordinator) Move(ctx context.Context, gameID string, cell int, declared entity.Symbol, conn Conn) error {
	log := that.logger.With("method", "Move", "game_id", gameID, "conn_id", conn.ID(), "cell", cell)

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.store.Get(ctx, gameID)
	if err != nil {
		that.recorder.MoveRecorded(metrics.MoveRejected)
		return that.reject(log, conn, err)
	}

	symbol := declared
	if bound, ok := that.boundSymbol(gameID, conn.ID()); ok {
		symbol = bound
	}

	if err = validateMove(game, cell, symbol); err != nil {
		that.recorder.MoveRecorded(metrics.MoveRejected)
		return that.reject(log, conn, err)
	}

	board := tictactoe.ApplyMove(game.BoardState, cell, symbol)
	turn := tictactoe.ToggleTurn(symbol)

	update := entity.GameUpdate{
		BoardState:  &board,
		CurrentTurn: &turn,
	}

	result := tictactoe.CheckWinner(board)
	if result != tictactoe.ResultNone {
		completion := entity.Completion(tictactoe.WinnerDisplay(result), that.now())
		update.Winner = completion.Winner
		update.Status = completion.Status
		update.CompletedAt = completion.CompletedAt
	}

	updated, err := that.store.Update(ctx, gameID, update)
	if err != nil {
		that.recorder.MoveRecorded(metrics.MoveFailed)
		log.Error("failed to save move", "error", err)
		return that.reject(log, conn, fmt.Errorf("%w: %w", apperror.ErrPersistenceFailed, err))
	}

	that.recorder.MoveRecorded(metrics.MoveAccepted)
	that.broadcast(gameID, entity.GameEvent(entity.EventGameUpdate, updated))

	if updated.IsCompleted() {
		that.finish(log, gameID, updated)
	}

	return nil
}

func validateMove(game *entity.Game, cell int, symbol entity.Symbol) error {
	if err := game.ConfirmPlayingState(); err != nil {
		return err
	}

	if game.CurrentTurn != symbol {
		return fmt.Errorf("%w: turn is %s", apperror.ErrNotYourTurn, game.CurrentTurn)
	}

	if !tictactoe.IsValidMove(game.BoardState, cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidMove, cell)
	}

	return nil
}

// Forfeit ends the game in favour of the opponent of nickname.
func (that *Coordinator) Forfeit(ctx context.Context, gameID, nickname string, conn Conn) error {
	log := that.logger.With("method", "Forfeit", "game_id", gameID, "conn_id", conn.ID())

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.store.Get(ctx, gameID)
	if err != nil {
		return that.reject(log, conn, err)
	}

	if game.IsCompleted() {
		return that.reject(log, conn, fmt.Errorf("%w: already completed", apperror.ErrGameNotActive))
	}

	winner, err := game.ForfeitWinner(nickname)
	if err != nil {
		return that.reject(log, conn, err)
	}

	updated, err := that.store.Update(ctx, gameID, entity.Completion(winner, that.now()))
	if err != nil {
		log.Error("failed to save forfeit", "error", err)
		return that.reject(log, conn, fmt.Errorf("%w: %w", apperror.ErrPersistenceFailed, err))
	}

	that.broadcast(gameID, entity.GameEvent(entity.EventGameUpdate, updated))
	that.finish(log, gameID, updated)

	return nil
}

// Disconnect drops conn from every room it joined. Remaining members are told; empty rooms go at once.
func (that *Coordinator) Disconnect(conn Conn) {
	log := that.logger.With("method", "Disconnect", "conn_id", conn.ID())

	that.mu.Lock()
	gameIDs := that.memberships[conn.ID()]
	delete(that.memberships, conn.ID())

	notify := make([]string, 0, len(gameIDs))
	for gameID := range gameIDs {
		r, ok := that.rooms[gameID]
		if !ok {
			continue
		}

		delete(r.members, conn.ID())

		if len(r.members) == 0 {
			that.destroyLocked(gameID, r)
			log.Debug("room destroyed after last member left", "game_id", gameID)
			continue
		}

		notify = append(notify, gameID)
	}
	that.mu.Unlock()

	for _, gameID := range notify {
		that.broadcast(gameID, entity.DisconnectedEvent(gameID))
	}
}

// CloseRoom forgets the room for gameID without notifying its members.
func (that *Coordinator) CloseRoom(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[gameID]
	if !ok {
		return
	}

	that.destroyLocked(gameID, r)
}

func (that *Coordinator) RoomSize(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	r, ok := that.rooms[gameID]
	if !ok {
		return 0
	}

	return len(r.members)
}

func (that *Coordinator) RoomCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}

// Shutdown stops pending teardown timers. Rooms stay readable but no new timers are armed.
func (that *Coordinator) Shutdown() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true

	for _, r := range that.rooms {
		if r.teardown != nil {
			r.teardown.Stop()
			r.teardown = nil
		}
	}
}

func (that *Coordinator) reject(log *slog.Logger, conn Conn, err error) error {
	if isClientError(err) {
		log.Debug("request rejected", "error", err)
	} else {
		log.Error("request failed", "error", err)
	}

	that.send(conn, entity.ErrorEvent(apperror.ClientMessage(err)))

	return err
}

func isClientError(err error) bool {
	return errors.Is(err, apperror.ErrGameNotFound) ||
		errors.Is(err, apperror.ErrGameNotActive) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrInvalidMove) ||
		errors.Is(err, apperror.ErrNotAPlayer)
}

func (that *Coordinator) finish(log *slog.Logger, gameID string, game *entity.Game) {
	if game.Winner != nil {
		that.recorder.GameCompleted(*game.Winner)
		log.Info("game completed", "winner", *game.Winner)
	}

	that.scheduleTeardown(gameID)
}

func (that *Coordinator) register(gameID string, conn Conn, symbol entity.Symbol) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[gameID]
	if !ok {
		r = &room{members: make(map[string]*member)}
		that.rooms[gameID] = r
		that.recorder.RoomOpened()
	}

	existing, ok := r.members[conn.ID()]
	if ok {
		if symbol != entity.EmptyCell {
			existing.symbol = symbol
		}
	} else {
		r.members[conn.ID()] = &member{conn: conn, symbol: symbol}
	}

	games, ok := that.memberships[conn.ID()]
	if !ok {
		games = make(map[string]struct{})
		that.memberships[conn.ID()] = games
	}
	games[gameID] = struct{}{}
}

func (that *Coordinator) boundSymbol(gameID, connID string) (entity.Symbol, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	r, ok := that.rooms[gameID]
	if !ok {
		return entity.EmptyCell, false
	}

	m, ok := r.members[connID]
	if !ok || m.symbol == entity.EmptyCell {
		return entity.EmptyCell, false
	}

	return m.symbol, true
}

// broadcast sends to a snapshot of the members, so concurrent removal cannot disturb the fan-out.
func (that *Coordinator) broadcast(gameID string, event entity.Event) {
	that.mu.RLock()
	r, ok := that.rooms[gameID]
	if !ok {
		that.mu.RUnlock()
		return
	}

	conns := make([]Conn, 0, len(r.members))
	for _, m := range r.members {
		conns = append(conns, m.conn)
	}
	that.mu.RUnlock()

	for _, conn := range conns {
		that.send(conn, event)
	}
}

func (that *Coordinator) send(conn Conn, event entity.Event) {
	if err := conn.Send(event); err != nil {
		that.logger.Debug("skipping closed connection", "conn_id", conn.ID(), "event", event.Type, "error", err)
	}
}

func (that *Coordinator) scheduleTeardown(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[gameID]
	if !ok || that.closed {
		return
	}

	if r.teardown != nil {
		r.teardown.Stop()
	}

	r.teardown = time.AfterFunc(that.teardownDelay, func() {
		that.teardown(gameID, r)
	})
}

// teardown is a no-op when the room was already destroyed or replaced by a newer one.
func (that *Coordinator) teardown(gameID string, expected *room) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.rooms[gameID]; !ok || current != expected {
		return
	}

	that.destroyLocked(gameID, expected)
	that.logger.Debug("room torn down after game completed", "game_id", gameID)
}

func (that *Coordinator) destroyLocked(gameID string, r *room) {
	if r.teardown != nil {
		r.teardown.Stop()
		r.teardown = nil
	}

	for connID := range r.members {
		games, ok := that.memberships[connID]
		if !ok {
			continue
		}

		delete(games, gameID)
		if len(games) == 0 {
			delete(that.memberships, connID)
		}
	}

	delete(that.rooms, gameID)
	that.recorder.RoomClosed()
}
