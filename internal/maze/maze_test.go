package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
	}{
		{"empty layout", nil},
		{"ragged rows", []string{"####", "###"}},
		{"unknown rune", []string{"#x#"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.layout)
			assert.Error(t, err)
		})
	}
}

func TestParse_DefaultLayout(t *testing.T) {
	m, err := Parse(DefaultLayout)
	require.NoError(t, err)

	assert.Equal(t, 28, m.Width())
	assert.Equal(t, 31, m.Height())
	assert.Len(t, m.PowerPelletTiles(), 4)
	assert.NotEmpty(t, m.PelletTiles())
}

func TestClassify(t *testing.T) {
	m := MustParse([]string{
		"###",
		"#.#",
		"#-#",
		"o# ",
	})

	tests := []struct {
		name string
		tile Tile
		want CellKind
	}{
		{"wall", Tile{Col: 0, Row: 0}, CellWall},
		{"pellet", Tile{Col: 1, Row: 1}, CellPellet},
		{"gate", Tile{Col: 1, Row: 2}, CellGate},
		{"power pellet", Tile{Col: 0, Row: 3}, CellPowerPellet},
		{"open", Tile{Col: 2, Row: 3}, CellOpen},
		{"row above grid", Tile{Col: 1, Row: -1}, CellWall},
		{"row below grid", Tile{Col: 1, Row: 4}, CellWall},
		{"col left of grid", Tile{Col: -1, Row: 1}, CellOpen},
		{"col right of grid", Tile{Col: 3, Row: 1}, CellOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Classify(tt.tile))
		})
	}
}

func TestPassable_GateNeedsPass(t *testing.T) {
	m := MustParse([]string{
		"#-#",
		"#.#",
	})

	gate := Tile{Col: 1, Row: 0}
	assert.False(t, m.Passable(gate, false))
	assert.True(t, m.Passable(gate, true))

	pellet := Tile{Col: 1, Row: 1}
	assert.True(t, m.Passable(pellet, false))

	wall := Tile{Col: 0, Row: 0}
	assert.False(t, m.Passable(wall, true))
}

func TestUpForbidden(t *testing.T) {
	m := MustParse(DefaultLayout)

	for _, restricted := range noUpTiles {
		assert.True(t, m.UpForbidden(restricted), "tile %v", restricted)
	}
	assert.False(t, m.UpForbidden(Tile{Col: 1, Row: 1}))
}

func TestInTunnelBand(t *testing.T) {
	m := MustParse(DefaultLayout)

	assert.True(t, m.InTunnelBand(Tile{Col: 0, Row: tunnelRow}))
	assert.True(t, m.InTunnelBand(Tile{Col: tunnelMinCol - 1, Row: tunnelRow}))
	assert.True(t, m.InTunnelBand(Tile{Col: tunnelMaxCol + 1, Row: tunnelRow}))
	assert.True(t, m.InTunnelBand(Tile{Col: 27, Row: tunnelRow}))

	assert.False(t, m.InTunnelBand(Tile{Col: tunnelMinCol, Row: tunnelRow}))
	assert.False(t, m.InTunnelBand(Tile{Col: tunnelMaxCol, Row: tunnelRow}))
	assert.False(t, m.InTunnelBand(Tile{Col: 0, Row: tunnelRow + 1}))
}

func TestApplyKillScreen(t *testing.T) {
	m := MustParse(DefaultLayout)
	left := make([]CellKind, m.Height())
	for r := 0; r < m.Height(); r++ {
		left[r] = m.Classify(Tile{Col: killScreenCol - 1, Row: r})
	}

	m.ApplyKillScreen(rand.New(rand.NewSource(7)))

	// Columns left of the corruption boundary are untouched.
	for r := 0; r < m.Height(); r++ {
		assert.Equal(t, left[r], m.Classify(Tile{Col: killScreenCol - 1, Row: r}), "row %d", r)
	}

	// The corrupted half actually changed somewhere.
	fresh := MustParse(DefaultLayout)
	changed := 0
	for r := 0; r < m.Height(); r++ {
		for c := killScreenCol; c < m.Width(); c++ {
			if m.Classify(Tile{Col: c, Row: r}) != fresh.Classify(Tile{Col: c, Row: r}) {
				changed++
			}
		}
	}
	assert.Positive(t, changed)
}
