package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mazehunt/mazehunt-server/internal/game"
	"github.com/mazehunt/mazehunt-server/internal/room"
	"github.com/mazehunt/mazehunt-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	rm     *room.Manager
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager, router *Router) *GameplayHandler {
	return &GameplayHandler{rm: rm, router: router}
}

type setDirectionRequest struct {
	Direction string `json:"direction"`
}

// HandleSetDirection queues a steering intent for the pilot's actor. An
// unrecognized direction string is ignored without error, leaving the
// currently queued heading unchanged.
func (h *GameplayHandler) HandleSetDirection(client *ws.Client, msg ws.Message) {
	var req setDirectionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid direction data"))
		return
	}

	playerID := h.router.GetPlayerID(client.ID)
	r := h.rm.FindRoomByPlayerID(playerID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}

	d := game.ParseDirection(req.Direction)
	if d == game.DirNone {
		return
	}

	if err := r.QueueHeading(playerID, d); err != nil {
		switch {
		case errors.Is(err, room.ErrNotPilot):
			client.SendMessage(ws.NewErrorMessage("only the pilot may steer"))
		case errors.Is(err, room.ErrNotPlaying):
			client.SendMessage(ws.NewErrorMessage("game is not in progress"))
		default:
			client.SendMessage(ws.NewErrorMessage(err.Error()))
		}
		return
	}

	slog.Debug("direction queued", "player", playerID, "direction", req.Direction)
}

// HandleNewGame starts a fresh run after a finished one. Only the pilot may
// restart, and not while a game is still running.
func (h *GameplayHandler) HandleNewGame(client *ws.Client, _ ws.Message) {
	playerID := h.router.GetPlayerID(client.ID)
	r := h.rm.FindRoomByPlayerID(playerID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}
	if r.PilotID() != playerID {
		client.SendMessage(ws.NewErrorMessage("only the pilot may start a new game"))
		return
	}

	if err := r.PrepareGame(); err != nil {
		if errors.Is(err, room.ErrGameInProgress) {
			client.SendMessage(ws.NewErrorMessage("game already in progress"))
		} else {
			client.SendMessage(ws.NewErrorMessage(err.Error()))
		}
		return
	}

	r.BroadcastLevelState()
	r.StartGameLoop()

	slog.Info("new game", "room", r.Code, "pilot", playerID)
}
