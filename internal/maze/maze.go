package maze

import (
	"fmt"
	"math/rand"
)

// CellKind classifies one grid cell of the maze.
type CellKind int

const (
	CellOpen CellKind = iota
	CellWall
	CellGate
	CellPellet
	CellPowerPellet
)

func (c CellKind) String() string {
	switch c {
	case CellWall:
		return "wall"
	case CellGate:
		return "gate"
	case CellPellet:
		return "pellet"
	case CellPowerPellet:
		return "power_pellet"
	default:
		return "open"
	}
}

// Tile is an integer grid coordinate.
type Tile struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Maze is the immutable tile grid for one level layout. The only sanctioned
// mutation is ApplyKillScreen, which callers must gate behind an explicit flag.
type Maze struct {
	width  int
	height int
	cells  [][]CellKind

	// Tiles where ghosts may not turn upward (pen-entrance restriction).
	noUp map[Tile]bool

	// Horizontal tunnel band: ghosts slow down here, and crossing the
	// left/right bound wraps to the opposite side.
	tunnelRow     int
	tunnelMinCol  int
	tunnelMaxCol  int
}

// Parse builds a Maze from an ASCII layout. Rows must all have the same
// width and contain only the runes '#', '.', 'o', '-', ' '.
func Parse(layout []string) (*Maze, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("maze: empty layout")
	}

	width := len(layout[0])
	cells := make([][]CellKind, len(layout))

	for r, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("maze: row %d has width %d, want %d", r, len(row), width)
		}
		cells[r] = make([]CellKind, width)
		for c, ch := range row {
			switch ch {
			case '#':
				cells[r][c] = CellWall
			case '.':
				cells[r][c] = CellPellet
			case 'o':
				cells[r][c] = CellPowerPellet
			case '-':
				cells[r][c] = CellGate
			case ' ':
				cells[r][c] = CellOpen
			default:
				return nil, fmt.Errorf("maze: unknown tile %q at row %d col %d", ch, r, c)
			}
		}
	}

	noUp := make(map[Tile]bool, len(noUpTiles))
	for _, t := range noUpTiles {
		noUp[t] = true
	}

	return &Maze{
		width:        width,
		height:       len(layout),
		cells:        cells,
		noUp:         noUp,
		tunnelRow:    tunnelRow,
		tunnelMinCol: tunnelMinCol,
		tunnelMaxCol: tunnelMaxCol,
	}, nil
}

// MustParse parses a layout known at compile time and panics on error.
func MustParse(layout []string) *Maze {
	m, err := Parse(layout)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Classify returns the cell kind at a tile. Out-of-bounds columns are treated
// as open so tunnel-overflow positions stay legal during wraparound;
// out-of-bounds rows are walls.
func (m *Maze) Classify(t Tile) CellKind {
	if t.Row < 0 || t.Row >= m.height {
		return CellWall
	}
	if t.Col < 0 || t.Col >= m.width {
		return CellOpen
	}
	return m.cells[t.Row][t.Col]
}

// Passable reports whether an actor may occupy the tile. Gate cells are only
// passable when gatePass is true (a ghost entering or leaving the pen); the
// player never passes a gate.
func (m *Maze) Passable(t Tile, gatePass bool) bool {
	switch m.Classify(t) {
	case CellWall:
		return false
	case CellGate:
		return gatePass
	default:
		return true
	}
}

// UpForbidden reports whether ghosts are barred from heading upward out of
// this tile. The restriction does not apply to the player.
func (m *Maze) UpForbidden(t Tile) bool {
	return m.noUp[t]
}

// InTunnelBand reports whether a tile lies in the slow tunnel band.
func (m *Maze) InTunnelBand(t Tile) bool {
	return t.Row == m.tunnelRow && (t.Col < m.tunnelMinCol || t.Col > m.tunnelMaxCol)
}

// PelletTiles returns all tiles holding a normal pellet.
func (m *Maze) PelletTiles() []Tile {
	return m.tilesOf(CellPellet)
}

// PowerPelletTiles returns all tiles holding a power pellet.
func (m *Maze) PowerPelletTiles() []Tile {
	return m.tilesOf(CellPowerPellet)
}

func (m *Maze) tilesOf(kind CellKind) []Tile {
	var tiles []Tile
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			if m.cells[r][c] == kind {
				tiles = append(tiles, Tile{Col: c, Row: r})
			}
		}
	}
	return tiles
}

// ApplyKillScreen corrupts the right half of the grid the way the level-256
// overflow does, toggling wall membership at random. Callers must gate this
// behind an explicit configuration flag; it is never triggered implicitly.
func (m *Maze) ApplyKillScreen(rng *rand.Rand) {
	for r := 0; r < m.height; r++ {
		for c := killScreenCol; c < m.width; c++ {
			if rng.Float64() > 0.4 {
				m.cells[r][c] = CellWall
			} else if m.cells[r][c] == CellWall {
				m.cells[r][c] = CellOpen
			}
		}
	}
}
