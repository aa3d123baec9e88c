package game

import "github.com/mazehunt/mazehunt-server/internal/maze"

// EventType tags a discrete simulation event.
type EventType string

const (
	EventItemEaten      EventType = "item_eaten"
	EventPowerItemEaten EventType = "power_item_eaten"
	EventPursuerEaten   EventType = "pursuer_eaten"
	EventPlayerCaptured EventType = "player_captured"
	EventLevelCleared   EventType = "level_cleared"
	EventBonusSpawned   EventType = "bonus_spawned"
	EventBonusConsumed  EventType = "bonus_consumed"
	EventExtraLife      EventType = "extra_life"
	EventGameOver       EventType = "game_over"
)

// Event is one discrete outcome of a simulation step. Tile is set for item
// events (the consumed tile); Value carries awarded points where relevant.
type Event struct {
	Type  EventType  `json:"type"`
	Tile  *maze.Tile `json:"tile,omitempty"`
	Value int        `json:"value,omitempty"`
}

func itemEvent(t EventType, at maze.Tile, points int) Event {
	tileCopy := at
	return Event{Type: t, Tile: &tileCopy, Value: points}
}
