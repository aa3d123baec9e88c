package store

import (
	"context"

	"github.com/mazehunt/mazehunt-server/internal/score"
)

// ScoreStore defines the interface for persistent high-score storage.
type ScoreStore interface {
	// Insert records a finished run.
	Insert(ctx context.Context, e *score.Entry) error
	// Top returns the best entries, highest score first.
	Top(ctx context.Context, limit int) ([]score.Entry, error)
	// Best returns the single highest entry, or nil when the table is empty.
	Best(ctx context.Context) (*score.Entry, error)
	// Close releases database resources.
	Close() error
}
