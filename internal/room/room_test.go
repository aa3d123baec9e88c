package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazehunt/mazehunt-server/internal/game"
	"github.com/mazehunt/mazehunt-server/internal/ws"
)

// mockClient creates a ws.Client with a buffered Send channel for testing.
func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

// drainMessages reads all pending messages from a client's send channel.
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

// findMessageByType finds the first message of a given type.
func findMessageByType(msgs []ws.Message, msgType string) *ws.Message {
	for _, m := range msgs {
		if m.Type == msgType {
			return &m
		}
	}
	return nil
}

func TestAddPlayer_FirstBecomesPilot(t *testing.T) {
	r := NewRoom("TEST", false, nil)

	p1 := &Player{ID: "p1", Nickname: "Alpha"}
	p2 := &Player{ID: "p2", Nickname: "Beta"}
	require.True(t, r.AddPlayer(p1, mockClient("c1")))
	require.True(t, r.AddPlayer(p2, mockClient("c2")))

	assert.True(t, p1.Pilot)
	assert.False(t, p2.Pilot)
	assert.Equal(t, "p1", r.PilotID())
	assert.Equal(t, 2, r.PlayerCount())
}

func TestAddPlayer_RejectsWhenFull(t *testing.T) {
	r := NewRoom("TEST", false, nil)

	for i := 0; i < MaxOccupants; i++ {
		p := &Player{ID: string(rune('a' + i)), Nickname: "P"}
		require.True(t, r.AddPlayer(p, mockClient(p.ID)))
	}

	assert.False(t, r.AddPlayer(&Player{ID: "extra", Nickname: "X"}, mockClient("extra")))
}

func TestRemovePlayer_TransfersPilotSeat(t *testing.T) {
	r := NewRoom("TEST", false, nil)

	p1 := &Player{ID: "p1", Nickname: "Alpha"}
	p2 := &Player{ID: "p2", Nickname: "Beta"}
	r.AddPlayer(p1, mockClient("c1"))
	r.AddPlayer(p2, mockClient("c2"))

	r.RemovePlayer("p1")

	assert.Equal(t, "p2", r.PilotID())
	assert.True(t, p2.Pilot)
	assert.Equal(t, 1, r.PlayerCount())
}

func TestRemovePlayer_PilotLeavingEndsGame(t *testing.T) {
	r := NewRoom("TEST", false, nil)
	p1 := &Player{ID: "p1", Nickname: "Alpha"}
	r.AddPlayer(p1, mockClient("c1"))

	require.NoError(t, r.PrepareGame())
	r.RemovePlayer("p1")

	assert.Equal(t, StateEnded, r.CurrentState())
	assert.True(t, r.IsEmpty())
}

func TestPrepareGame_Transitions(t *testing.T) {
	r := NewRoom("TEST", false, nil)
	assert.Equal(t, StateWaiting, r.CurrentState())

	require.NoError(t, r.PrepareGame())
	assert.Equal(t, StatePlaying, r.CurrentState())

	assert.ErrorIs(t, r.PrepareGame(), ErrGameInProgress)

	r.StopGame()
	assert.Equal(t, StateEnded, r.CurrentState())

	// A finished room can host a fresh run.
	require.NoError(t, r.PrepareGame())
	assert.Equal(t, StatePlaying, r.CurrentState())
	r.StopGame()
}

func TestStopGame_DoubleStopSafe(t *testing.T) {
	r := NewRoom("TEST", false, nil)
	require.NoError(t, r.PrepareGame())

	r.StopGame()
	r.StopGame()

	assert.Equal(t, StateEnded, r.CurrentState())
}

func TestQueueHeading_Guards(t *testing.T) {
	r := NewRoom("TEST", false, nil)
	p1 := &Player{ID: "p1", Nickname: "Alpha"}
	p2 := &Player{ID: "p2", Nickname: "Beta"}
	r.AddPlayer(p1, mockClient("c1"))
	r.AddPlayer(p2, mockClient("c2"))

	assert.ErrorIs(t, r.QueueHeading("p1", game.DirLeft), ErrNotPlaying)

	require.NoError(t, r.PrepareGame())
	defer r.StopGame()

	assert.NoError(t, r.QueueHeading("p1", game.DirLeft))
	assert.ErrorIs(t, r.QueueHeading("p2", game.DirLeft), ErrNotPilot)
}

func TestBroadcastMessage_ReachesAllOccupants(t *testing.T) {
	r := NewRoom("TEST", false, nil)
	c1 := mockClient("c1")
	c2 := mockClient("c2")
	r.AddPlayer(&Player{ID: "p1", Nickname: "Alpha"}, c1)
	r.AddPlayer(&Player{ID: "p2", Nickname: "Beta"}, c2)

	r.BroadcastMessage(ws.NewErrorMessage("ping"))

	for _, c := range []*ws.Client{c1, c2} {
		msgs := drainMessages(c)
		require.NotNil(t, findMessageByType(msgs, ws.TypeError))
	}
}
