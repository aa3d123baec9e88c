package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mazehunt/mazehunt-server/internal/room"
	"github.com/mazehunt/mazehunt-server/internal/ws"
)

// LobbyHandler handles lobby-related messages.
type LobbyHandler struct {
	rm     *room.Manager
	router *Router
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager, router *Router) *LobbyHandler {
	return &LobbyHandler{
		rm:     rm,
		router: router,
	}
}

type createRoomRequest struct {
	Nickname string `json:"nickname"`
}

type createRoomResponse struct {
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
	Pilot    bool   `json:"pilot"`
}

// HandleCreateRoom handles room creation. The creator becomes the pilot.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}

	r := h.rm.CreateRoom()
	player := &room.Player{ID: uuid.New().String(), Nickname: req.Nickname}
	r.AddPlayer(player, client)
	h.router.RegisterPlayer(client.ID, player.ID)

	resp, _ := ws.NewMessage(ws.TypeCreateRoom, createRoomResponse{
		Code:     r.Code,
		PlayerID: player.ID,
		Pilot:    player.Pilot,
	})
	client.SendMessage(resp)

	slog.Info("player created room", "player", player.Nickname, "room", r.Code)
}

type joinRoomRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

// HandleJoinRoom handles joining an existing room as a spectator (or as the
// pilot when the seat is vacant).
func (h *LobbyHandler) HandleJoinRoom(client *ws.Client, msg ws.Message) {
	var req joinRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("code and nickname are required"))
		return
	}

	r := h.rm.GetRoom(req.Code)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}

	player := &room.Player{ID: uuid.New().String(), Nickname: req.Nickname}
	if !r.AddPlayer(player, client) {
		client.SendMessage(ws.NewErrorMessage("room is full"))
		return
	}
	h.router.RegisterPlayer(client.ID, player.ID)

	resp, _ := ws.NewMessage(ws.TypeJoinRoom, createRoomResponse{
		Code:     r.Code,
		PlayerID: player.ID,
		Pilot:    player.Pilot,
	})
	client.SendMessage(resp)

	// A joiner mid-game needs the full item membership to draw the grid.
	if r.CurrentState() == room.StatePlaying {
		r.SendLevelState(player.ID)
	}

	h.broadcastRoomInfo(r)

	slog.Info("player joined room", "player", player.Nickname, "room", r.Code)
}

// HandleStartGame starts the session. Only the pilot may start.
func (h *LobbyHandler) HandleStartGame(client *ws.Client, _ ws.Message) {
	playerID := h.router.GetPlayerID(client.ID)
	r := h.rm.FindRoomByPlayerID(playerID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}
	if r.PilotID() != playerID {
		client.SendMessage(ws.NewErrorMessage("only the pilot may start the game"))
		return
	}

	if err := r.PrepareGame(); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	// Clients receive the full grid before the first tick frame.
	r.BroadcastLevelState()
	r.StartGameLoop()
	h.broadcastRoomInfo(r)

	slog.Info("game starting", "room", r.Code, "pilot", playerID)
}

// HandleLeaveRoom handles a player leaving a room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removePlayer(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removePlayer(client)
}

func (h *LobbyHandler) removePlayer(client *ws.Client) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		return
	}

	r := h.rm.FindRoomByPlayerID(playerID)
	if r != nil {
		r.RemovePlayer(playerID)
		if r.IsEmpty() {
			r.StopGame()
			h.rm.RemoveRoom(r.Code)
		} else {
			h.broadcastRoomInfo(r)
		}
	}

	h.router.UnregisterPlayer(client.ID)
	slog.Info("player left", "player", playerID)
}

type roomInfoResponse struct {
	Code    string         `json:"code"`
	State   string         `json:"state"`
	Players []*room.Player `json:"players"`
	PilotID string         `json:"pilot_id"`
}

func (h *LobbyHandler) broadcastRoomInfo(r *room.Room) {
	resp, _ := ws.NewMessage(ws.TypeRoomInfo, roomInfoResponse{
		Code:    r.Code,
		State:   r.CurrentState().String(),
		Players: r.GetPlayerList(),
		PilotID: r.PilotID(),
	})
	r.BroadcastMessage(resp)
}
