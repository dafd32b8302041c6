package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const gamesSchema = `
CREATE TABLE IF NOT EXISTS games (
	id               TEXT PRIMARY KEY,
	player1_nickname TEXT NOT NULL,
	player2_nickname TEXT,
	board_state      JSONB NOT NULL,
	current_turn     TEXT NOT NULL DEFAULT 'X',
	winner           TEXT,
	status           TEXT NOT NULL DEFAULT 'waiting',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at     TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS games_created_at_idx ON games (created_at DESC);
`

type PostgresStorage struct {
	Connection *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &PostgresStorage{Connection: pool}, nil
}

// Init creates the games table when it does not exist yet.
func (that *PostgresStorage) Init(ctx context.Context) error {
	if _, err := that.Connection.Exec(ctx, gamesSchema); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *PostgresStorage) Close() {
	that.Connection.Close()
}
