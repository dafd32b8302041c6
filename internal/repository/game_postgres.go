package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rocketscienceinc/tictactoe-live/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-live/internal/entity"
)

const gameColumns = `id, player1_nickname, player2_nickname, board_state, current_turn, winner, status, created_at, completed_at`

const statsQuery = `
SELECT
	count(*)::int,
	count(*) FILTER (WHERE winner = 'Player 1')::int,
	count(*) FILTER (WHERE winner = 'Player 2')::int,
	count(*) FILTER (WHERE winner = 'Draw')::int
FROM games
WHERE status = 'completed'`

const leaderboardQuery = `
WITH player_stats AS (
	SELECT player1_nickname AS player_nickname,
		count(*) FILTER (WHERE winner = 'Player 1') AS wins,
		count(*) AS games
	FROM games
	WHERE status = 'completed'
	GROUP BY player1_nickname

	UNION ALL

	SELECT player2_nickname AS player_nickname,
		count(*) FILTER (WHERE winner = 'Player 2') AS wins,
		count(*) AS games
	FROM games
	WHERE status = 'completed' AND player2_nickname IS NOT NULL
	GROUP BY player2_nickname
)
SELECT player_nickname, sum(wins)::int, sum(games)::int
FROM player_stats
GROUP BY player_nickname
HAVING sum(wins) > 0
ORDER BY sum(wins) DESC, sum(games) ASC, player_nickname ASC
LIMIT $1`

type pgGame struct {
	pool *pgxpool.Pool
}

// NewPostgresGameRepository keeps games in the games table created by storage.PostgresStorage.Init.
func NewPostgresGameRepository(pool *pgxpool.Pool) GameRepository {
	return &pgGame{
		pool: pool,
	}
}

func (that *pgGame) Create(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	created := prepareForCreate(game)

	query := `INSERT INTO games (` + gameColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := that.pool.Exec(ctx, query,
		created.ID,
		created.Player1Nickname,
		created.Player2Nickname,
		created.BoardState,
		string(created.CurrentTurn),
		created.Winner,
		string(created.Status),
		created.CreatedAt,
		created.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}

	return created, nil
}

func (that *pgGame) Get(ctx context.Context, id string) (*entity.Game, error) {
	row := that.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)

	return scanGameRow(row, id)
}

// Update locks the row for the duration of the read-modify-write.
func (that *pgGame) Update(ctx context.Context, id string, update entity.GameUpdate) (*entity.Game, error) {
	var updated *entity.Game

	err := pgx.BeginFunc(ctx, that.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1 FOR UPDATE`, id)

		game, err := scanGameRow(row, id)
		if err != nil {
			return err
		}

		if err = update.Apply(game); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE games
			SET player2_nickname = $2, board_state = $3, current_turn = $4, winner = $5, status = $6, completed_at = $7
			WHERE id = $1`,
			game.ID,
			game.Player2Nickname,
			game.BoardState,
			string(game.CurrentTurn),
			game.Winner,
			string(game.Status),
			game.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		updated = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (that *pgGame) Delete(ctx context.Context, id string) error {
	if _, err := that.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}

func (that *pgGame) ListRecent(ctx context.Context, limit int) ([]*entity.Game, error) {
	if limit <= 0 {
		return []*entity.Game{}, nil
	}

	rows, err := that.pool.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}
	defer rows.Close()

	games := make([]*entity.Game, 0, limit)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	return games, nil
}

func (that *pgGame) Stats(ctx context.Context) (entity.GameStats, error) {
	var stats entity.GameStats

	err := that.pool.QueryRow(ctx, statsQuery).Scan(
		&stats.TotalGames,
		&stats.Player1Wins,
		&stats.Player2Wins,
		&stats.Draws,
	)
	if err != nil {
		return entity.GameStats{}, fmt.Errorf("failed to compute stats: %w", err)
	}

	return stats, nil
}

func (that *pgGame) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	rows, err := that.pool.Query(ctx, leaderboardQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]entity.LeaderboardEntry, 0)
	for rows.Next() {
		var entry entity.LeaderboardEntry
		if err = rows.Scan(&entry.PlayerNickname, &entry.Wins, &entry.Games); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}

	return entries, nil
}

func scanGameRow(row pgx.Row, id string) (*entity.Game, error) {
	game, err := scanGame(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return game, err
}

func scanGame(row pgx.Row) (*entity.Game, error) {
	var (
		game        entity.Game
		currentTurn string
		status      string
		createdAt   time.Time
	)

	err := row.Scan(
		&game.ID,
		&game.Player1Nickname,
		&game.Player2Nickname,
		&game.BoardState,
		&currentTurn,
		&game.Winner,
		&status,
		&createdAt,
		&game.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	game.CurrentTurn = entity.Symbol(currentTurn)
	game.Status = entity.Status(status)
	game.CreatedAt = createdAt.UTC()

	if game.CompletedAt != nil {
		completedAt := game.CompletedAt.UTC()
		game.CompletedAt = &completedAt
	}

	return &game, nil
}
