package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazehunt/mazehunt-server/internal/room"
	"github.com/mazehunt/mazehunt-server/internal/ws"
)

func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

func drainMessages(client *ws.Client) []ws.Message {
	var msgs []ws.Message
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				msgs = append(msgs, msg)
			}
		default:
			return msgs
		}
	}
}

func findMessageByType(msgs []ws.Message, msgType string) *ws.Message {
	for _, m := range msgs {
		if m.Type == msgType {
			return &m
		}
	}
	return nil
}

func sendMessage(t *testing.T, router *Router, client *ws.Client, msgType string, payload any) {
	t.Helper()
	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		data = raw
	}
	raw, err := json.Marshal(ws.Message{Type: msgType, Data: data})
	require.NoError(t, err)
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

func setupLobbyTest() (*Router, *room.Manager) {
	rm := room.NewManager(false, nil)
	return NewRouter(rm), rm
}

// createTestRoom creates a room via the router and returns its code and the
// pilot's player ID.
func createTestRoom(t *testing.T, router *Router, client *ws.Client, nickname string) (code, playerID string) {
	t.Helper()
	sendMessage(t, router, client, ws.TypeCreateRoom, createRoomRequest{Nickname: nickname})

	msgs := drainMessages(client)
	created := findMessageByType(msgs, ws.TypeCreateRoom)
	require.NotNil(t, created)

	var resp createRoomResponse
	require.NoError(t, json.Unmarshal(created.Data, &resp))
	return resp.Code, resp.PlayerID
}

func TestHandleCreateRoom(t *testing.T) {
	router, rm := setupLobbyTest()
	client := mockClient("c1")

	code, playerID := createTestRoom(t, router, client, "Alpha")

	assert.Len(t, code, 4)
	assert.NotEmpty(t, playerID)
	require.NotNil(t, rm.GetRoom(code))
	assert.Equal(t, playerID, rm.GetRoom(code).PilotID())
}

func TestHandleCreateRoom_RequiresNickname(t *testing.T) {
	router, _ := setupLobbyTest()
	client := mockClient("c1")

	sendMessage(t, router, client, ws.TypeCreateRoom, createRoomRequest{})

	msgs := drainMessages(client)
	require.NotNil(t, findMessageByType(msgs, ws.TypeError))
}

func TestHandleJoinRoom(t *testing.T) {
	router, rm := setupLobbyTest()
	pilot := mockClient("c1")
	joiner := mockClient("c2")

	code, _ := createTestRoom(t, router, pilot, "Alpha")
	sendMessage(t, router, joiner, ws.TypeJoinRoom, joinRoomRequest{Code: code, Nickname: "Beta"})

	msgs := drainMessages(joiner)
	joined := findMessageByType(msgs, ws.TypeJoinRoom)
	require.NotNil(t, joined)

	var resp createRoomResponse
	require.NoError(t, json.Unmarshal(joined.Data, &resp))
	assert.False(t, resp.Pilot, "joiner spectates while the seat is taken")

	assert.Equal(t, 2, rm.GetRoom(code).PlayerCount())

	// Both occupants get the roster update.
	require.NotNil(t, findMessageByType(msgs, ws.TypeRoomInfo))
	require.NotNil(t, findMessageByType(drainMessages(pilot), ws.TypeRoomInfo))
}

func TestHandleJoinRoom_UnknownCode(t *testing.T) {
	router, _ := setupLobbyTest()
	client := mockClient("c1")

	sendMessage(t, router, client, ws.TypeJoinRoom, joinRoomRequest{Code: "ZZZZ", Nickname: "Beta"})

	msgs := drainMessages(client)
	errMsg := findMessageByType(msgs, ws.TypeError)
	require.NotNil(t, errMsg)

	var payload ws.ErrorMessage
	json.Unmarshal(errMsg.Data, &payload)
	assert.Equal(t, "room not found", payload.Message)
}

func TestHandleStartGame_PilotOnly(t *testing.T) {
	router, rm := setupLobbyTest()
	pilot := mockClient("c1")
	joiner := mockClient("c2")

	code, _ := createTestRoom(t, router, pilot, "Alpha")
	sendMessage(t, router, joiner, ws.TypeJoinRoom, joinRoomRequest{Code: code, Nickname: "Beta"})
	drainMessages(pilot)
	drainMessages(joiner)

	// A spectator cannot start.
	sendMessage(t, router, joiner, ws.TypeStartGame, nil)
	require.NotNil(t, findMessageByType(drainMessages(joiner), ws.TypeError))
	assert.Equal(t, room.StateWaiting, rm.GetRoom(code).CurrentState())

	// The pilot can.
	sendMessage(t, router, pilot, ws.TypeStartGame, nil)
	defer rm.GetRoom(code).StopGame()

	assert.Equal(t, room.StatePlaying, rm.GetRoom(code).CurrentState())
	msgs := drainMessages(pilot)
	require.NotNil(t, findMessageByType(msgs, ws.TypeLevelState))
}

func TestHandleLeaveRoom_LastOccupantRemovesRoom(t *testing.T) {
	router, rm := setupLobbyTest()
	client := mockClient("c1")

	code, _ := createTestRoom(t, router, client, "Alpha")
	require.Equal(t, 1, rm.RoomCount())

	sendMessage(t, router, client, ws.TypeLeaveRoom, nil)

	assert.Equal(t, 0, rm.RoomCount())
	assert.Nil(t, rm.GetRoom(code))
}

func TestHandleDisconnect_PromotesSpectator(t *testing.T) {
	router, rm := setupLobbyTest()
	pilot := mockClient("c1")
	joiner := mockClient("c2")

	code, pilotID := createTestRoom(t, router, pilot, "Alpha")
	sendMessage(t, router, joiner, ws.TypeJoinRoom, joinRoomRequest{Code: code, Nickname: "Beta"})
	drainMessages(joiner)

	router.HandleDisconnect(pilot)

	r := rm.GetRoom(code)
	require.NotNil(t, r)
	assert.Equal(t, 1, r.PlayerCount())
	assert.NotEqual(t, pilotID, r.PilotID())
	assert.NotEmpty(t, r.PilotID())
}

func TestHandleMessage_UnknownType(t *testing.T) {
	router, _ := setupLobbyTest()
	client := mockClient("c1")

	raw, _ := json.Marshal(ws.Message{Type: "launch_missiles"})
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})

	require.NotNil(t, findMessageByType(drainMessages(client), ws.TypeError))
}

func TestHandleMessage_MalformedJSON(t *testing.T) {
	router, _ := setupLobbyTest()
	client := mockClient("c1")

	router.HandleMessage(&ws.ClientMessage{Client: client, Data: []byte("{not json")})

	require.NotNil(t, findMessageByType(drainMessages(client), ws.TypeError))
}
