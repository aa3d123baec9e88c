package game

import (
	"math"

	"github.com/mazehunt/mazehunt-server/internal/maze"
)

// Actor holds the continuous position and heading shared by the player and
// the ghosts. Positions are in tile units; the containing tile is the floor
// of each coordinate.
type Actor struct {
	X, Y    float64
	Dir     Direction
	NextDir Direction

	startX, startY float64
	startDir       Direction
}

func tile(col, row int) maze.Tile {
	return maze.Tile{Col: col, Row: row}
}

// decisionTol widens the tile-center tolerance to half of one tick's step,
// so an actor can never skip over a center between ticks.
func decisionTol(speed float64) float64 {
	tol := speed/2 + 1e-9
	if tol < centerTolerance {
		tol = centerTolerance
	}
	return tol
}

// Tile returns the tile containing the actor.
func (a *Actor) Tile() maze.Tile {
	return tile(int(math.Floor(a.X)), int(math.Floor(a.Y)))
}

// AtCenter reports whether the actor is within tolerance of its tile center.
func (a *Actor) AtCenter(tolerance float64) bool {
	t := a.Tile()
	return math.Abs(a.X-(float64(t.Col)+0.5)) < tolerance &&
		math.Abs(a.Y-(float64(t.Row)+0.5)) < tolerance
}

// SnapToCenter clamps the actor to its exact tile center. Committing a turn
// through this prevents corner-cutting drift from accumulating.
func (a *Actor) SnapToCenter() {
	t := a.Tile()
	a.X = float64(t.Col) + 0.5
	a.Y = float64(t.Row) + 0.5
}

// Advance moves the actor along its heading by speed tiles, then applies
// tunnel wraparound. Wraparound is evaluated every tick, not just at tile
// boundaries.
func (a *Actor) Advance(speed float64, width int) {
	dc, dr := a.Dir.Delta()
	a.X += float64(dc) * speed
	a.Y += float64(dr) * speed

	if a.X < 0 {
		a.X = float64(width) - 0.5
	} else if a.X >= float64(width) {
		a.X = 0.5
	}
}

// DistSq returns the squared distance from the actor to a point.
func (a *Actor) DistSq(x, y float64) float64 {
	dx := a.X - x
	dy := a.Y - y
	return dx*dx + dy*dy
}

// ResetPosition returns the actor to its start position and heading.
func (a *Actor) ResetPosition() {
	a.X = a.startX
	a.Y = a.startY
	a.Dir = a.startDir
	a.NextDir = DirNone
}
