package score

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one finished run on the high-score table.
type Entry struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry records a finished run for the given player.
func NewEntry(nickname string, points, level int) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		Nickname:  nickname,
		Score:     points,
		Level:     level,
		CreatedAt: time.Now(),
	}
}
