package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mazehunt/mazehunt-server/internal/game"
	"github.com/mazehunt/mazehunt-server/internal/maze"
	"github.com/mazehunt/mazehunt-server/internal/score"
	"github.com/mazehunt/mazehunt-server/internal/store"
	"github.com/mazehunt/mazehunt-server/internal/ws"
)

// MaxOccupants caps the pilot plus spectators per room.
const MaxOccupants = 8

// State is the room lifecycle state.
type State int

const (
	StateWaiting State = iota
	StatePlaying
	StateEnded
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "waiting"
	}
}

var (
	// ErrNotPilot is returned when a spectator sends a gameplay intent.
	ErrNotPilot = errors.New("room: only the pilot may steer")
	// ErrNotPlaying is returned for gameplay intents outside a running game.
	ErrNotPlaying = errors.New("room: game is not in progress")
	// ErrGameInProgress is returned when starting a game that already runs.
	ErrGameInProgress = errors.New("room: game already in progress")
)

// Player is one room occupant. The pilot steers; everyone else spectates.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Pilot    bool   `json:"pilot"`
}

// Room owns one game session: a simulation, its tick loop, and the
// connected clients. The simulation is touched only by the goroutine
// running gameLoop; external input arrives through the headings channel.
type Room struct {
	Code string

	state   State
	pilotID string
	players map[string]*Player
	clients map[string]*ws.Client

	sim        *game.Simulation
	killScreen bool
	scores     store.ScoreStore

	headings chan game.Direction
	stopCh   chan struct{}

	// levelFrame caches the last level_state frame so mid-game joiners can
	// be brought up to date without touching the loop-owned simulation.
	levelFrame    ws.Message
	hasLevelFrame bool

	mu sync.RWMutex
}

// NewRoom creates a new room with the given code.
func NewRoom(code string, killScreen bool, scores store.ScoreStore) *Room {
	return &Room{
		Code:       code,
		state:      StateWaiting,
		players:    make(map[string]*Player),
		clients:    make(map[string]*ws.Client),
		killScreen: killScreen,
		scores:     scores,
		headings:   make(chan game.Direction, 16),
	}
}

// AddPlayer adds an occupant to the room. The first occupant becomes the
// pilot. Returns false if the room is full.
func (r *Room) AddPlayer(player *Player, client *ws.Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= MaxOccupants {
		return false
	}

	if len(r.players) == 0 {
		r.pilotID = player.ID
		player.Pilot = true
	}
	r.players[player.ID] = player
	r.clients[player.ID] = client
	return true
}

// RemovePlayer removes an occupant. A departing pilot ends the running game
// and hands the seat to another occupant.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	wasPilot := r.pilotID == playerID
	delete(r.players, playerID)
	delete(r.clients, playerID)

	if wasPilot {
		r.pilotID = ""
		for id, p := range r.players {
			r.pilotID = id
			p.Pilot = true
			break
		}
	}
	r.mu.Unlock()

	if wasPilot {
		r.StopGame()
	}
}

// PlayerCount returns the number of occupants.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// HasPlayer reports whether the given occupant is in the room.
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.players[playerID]
	return ok
}

// IsEmpty returns true if the room has no occupants.
func (r *Room) IsEmpty() bool {
	return r.PlayerCount() == 0
}

// CurrentState returns the room lifecycle state.
func (r *Room) CurrentState() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// PilotID returns the occupant allowed to steer.
func (r *Room) PilotID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pilotID
}

// GetPlayerList returns a slice of all occupants.
func (r *Room) GetPlayerList() []*Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	return players
}

// BroadcastMessage sends a message to every occupant.
func (r *Room) BroadcastMessage(msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.SendMessage(msg)
	}
}

// SendToPlayer sends a message to a single occupant.
func (r *Room) SendToPlayer(playerID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[playerID]; ok {
		client.SendMessage(msg)
	}
}

// PrepareGame builds a fresh simulation and transitions to playing state.
// Must be called before broadcasting level_state and starting the loop.
func (r *Room) PrepareGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StatePlaying {
		return ErrGameInProgress
	}

	sim, err := game.NewSimulation(game.Options{KillScreen: r.killScreen})
	if err != nil {
		return err
	}
	r.sim = sim
	r.state = StatePlaying
	r.stopCh = make(chan struct{})

	// Drop headings queued before this run.
drain:
	for {
		select {
		case <-r.headings:
		default:
			break drain
		}
	}

	slog.Info("game prepared", "room", r.Code, "kill_screen", r.killScreen)
	return nil
}

// StartGameLoop starts the tick loop. Must be called after PrepareGame.
func (r *Room) StartGameLoop() {
	go r.gameLoop()
}

// StopGame stops the tick loop and transitions to ended state.
func (r *Room) StopGame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePlaying {
		return
	}
	r.state = StateEnded

	select {
	case <-r.stopCh:
		// Already closed
	default:
		close(r.stopCh)
	}
}

// QueueHeading feeds a steering intent into the running simulation. Only the
// pilot may steer, and only while a game is in progress.
func (r *Room) QueueHeading(playerID string, d game.Direction) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state != StatePlaying {
		return ErrNotPlaying
	}
	if playerID != r.pilotID {
		return ErrNotPilot
	}

	select {
	case r.headings <- d:
	default:
		// Input faster than the tick loop drains; drop the oldest intent.
	}
	return nil
}

type levelStateMessage struct {
	Level   int         `json:"level"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Pellets []maze.Tile `json:"pellets"`
	Power   []maze.Tile `json:"power"`
	Score   int         `json:"score"`
	Lives   int         `json:"lives"`
}

// BroadcastLevelState sends the full item membership of the current level.
// Per-tick frames carry only counts; clients rebuild the grid from this plus
// the item events. Must only be called from the goroutine owning the
// simulation: before the loop starts, or from within it.
func (r *Room) BroadcastLevelState() {
	pellets, power := r.sim.ItemTiles()
	msg, _ := ws.NewMessage(ws.TypeLevelState, levelStateMessage{
		Level:   r.sim.Level(),
		Width:   r.sim.GridWidth(),
		Height:  r.sim.GridHeight(),
		Pellets: pellets,
		Power:   power,
		Score:   r.sim.Score(),
		Lives:   r.sim.Lives(),
	})

	r.mu.Lock()
	r.levelFrame = msg
	r.hasLevelFrame = true
	r.mu.Unlock()

	r.BroadcastMessage(msg)
}

// SendLevelState sends the cached level_state frame to one occupant, so a
// mid-game joiner can draw the grid without racing the tick loop.
func (r *Room) SendLevelState(playerID string) {
	r.mu.RLock()
	msg, ok := r.levelFrame, r.hasLevelFrame
	r.mu.RUnlock()
	if ok {
		r.SendToPlayer(playerID, msg)
	}
}

// gameLoop advances the simulation at the fixed tick rate and broadcasts a
// snapshot frame each tick plus an event frame when the tick produced any.
func (r *Room) gameLoop() {
	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
		input:
			for {
				select {
				case d := <-r.headings:
					r.sim.QueueHeading(d)
				default:
					break input
				}
			}

			events := r.sim.Step()
			snap := r.sim.Snapshot()

			msg, _ := ws.NewMessage(ws.TypeGameState, snap)
			r.BroadcastMessage(msg)

			if len(events) > 0 {
				evMsg, _ := ws.NewMessage(ws.TypeGameEvents, events)
				r.BroadcastMessage(evMsg)
			}

			for _, ev := range events {
				switch ev.Type {
				case game.EventLevelCleared:
					slog.Info("level cleared", "room", r.Code, "level", ev.Value)
					r.BroadcastLevelState()
				case game.EventPlayerCaptured:
					slog.Info("player captured", "room", r.Code, "lives", snap.Lives)
				case game.EventGameOver:
					r.finishGame(ev.Value, snap.Level)
					return
				}
			}
		}
	}
}

// finishGame records the run on the high-score table and ends the session.
func (r *Room) finishGame(points, level int) {
	r.mu.RLock()
	pilot := r.players[r.pilotID]
	r.mu.RUnlock()

	if r.scores != nil && pilot != nil {
		entry := score.NewEntry(pilot.Nickname, points, level)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.scores.Insert(ctx, entry); err != nil {
			slog.Error("failed to record high score", "room", r.Code, "error", err)
		}
	}

	r.StopGame()
	slog.Info("game over", "room", r.Code, "score", points, "level", level)
}
