package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazehunt/mazehunt-server/internal/game"
	"github.com/mazehunt/mazehunt-server/internal/ws"
)

func setupRunningRoom(t *testing.T) (*Room, *ws.Client) {
	t.Helper()

	r := NewRoom("TEST", false, nil)
	c := mockClient("c1")
	r.AddPlayer(&Player{ID: "p1", Nickname: "Alpha"}, c)

	require.NoError(t, r.PrepareGame())
	r.BroadcastLevelState()
	r.StartGameLoop()
	t.Cleanup(r.StopGame)

	return r, c
}

func TestBroadcastLevelState_FullItemMembership(t *testing.T) {
	_, c := setupRunningRoom(t)

	msgs := drainMessages(c)
	stateMsg := findMessageByType(msgs, ws.TypeLevelState)
	require.NotNil(t, stateMsg, "should receive level_state before tick frames")

	var ls levelStateMessage
	require.NoError(t, json.Unmarshal(stateMsg.Data, &ls))

	assert.Equal(t, 1, ls.Level)
	assert.Equal(t, 28, ls.Width)
	assert.Equal(t, 31, ls.Height)
	assert.NotEmpty(t, ls.Pellets)
	assert.Len(t, ls.Power, 4)
	assert.Equal(t, game.StartLives, ls.Lives)
}

func TestGameLoop_BroadcastsSnapshotFrames(t *testing.T) {
	_, c := setupRunningRoom(t)

	// Wait for a few ticks.
	time.Sleep(5 * game.TickInterval)

	msgs := drainMessages(c)
	stateMsg := findMessageByType(msgs, ws.TypeGameState)
	require.NotNil(t, stateMsg, "should receive game_state frames")

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(stateMsg.Data, &snap))

	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, game.StartLives, snap.Lives)
	assert.Len(t, snap.Ghosts, 4)
	assert.False(t, snap.Over)
}

func TestGameLoop_AppliesQueuedHeading(t *testing.T) {
	r, c := setupRunningRoom(t)

	require.NoError(t, r.QueueHeading("p1", game.DirLeft))

	time.Sleep(8 * game.TickInterval)
	msgs := drainMessages(c)

	var lastSnap *game.Snapshot
	for _, m := range msgs {
		if m.Type != ws.TypeGameState {
			continue
		}
		var snap game.Snapshot
		if err := json.Unmarshal(m.Data, &snap); err == nil {
			lastSnap = &snap
		}
	}

	require.NotNil(t, lastSnap)
	assert.Equal(t, game.DirLeft, lastSnap.Player.Dir)
	assert.Less(t, lastSnap.Player.X, 13.5, "player should have moved left from the start tile")
}

func TestGameLoop_StopsOnStopGame(t *testing.T) {
	r, c := setupRunningRoom(t)

	time.Sleep(3 * game.TickInterval)
	r.StopGame()

	// Let any in-flight tick land, then verify silence.
	time.Sleep(3 * game.TickInterval)
	drainMessages(c)
	time.Sleep(3 * game.TickInterval)

	assert.Empty(t, drainMessages(c), "no frames after stop")
	assert.Equal(t, StateEnded, r.CurrentState())
}
