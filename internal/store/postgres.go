package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mazehunt/mazehunt-server/internal/score"
)

const schema = `
CREATE TABLE IF NOT EXISTS high_scores (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL,
    score BIGINT NOT NULL,
    level INT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_high_scores_score ON high_scores(score DESC);
`

// PostgresStore implements ScoreStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Insert records a finished run.
func (s *PostgresStore) Insert(ctx context.Context, e *score.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO high_scores (id, nickname, score, level, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Nickname, e.Score, e.Level, e.CreatedAt)
	return err
}

// Top returns the best entries, highest score first.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]score.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, nickname, score, level, created_at
		 FROM high_scores ORDER BY score DESC, created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []score.Entry
	for rows.Next() {
		var e score.Entry
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Score, &e.Level, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Best returns the single highest entry, or nil when the table is empty.
func (s *PostgresStore) Best(ctx context.Context) (*score.Entry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, nickname, score, level, created_at
		 FROM high_scores ORDER BY score DESC, created_at ASC LIMIT 1`)

	var e score.Entry
	err := row.Scan(&e.ID, &e.Nickname, &e.Score, &e.Level, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
