package game

import (
	"math/rand"

	"github.com/mazehunt/mazehunt-server/internal/maze"
)

// targetTile computes a ghost's destination tile for the current decision
// point: mode first, then personality. chaser is the direct-pursuer ghost,
// needed by the flanker's doubling rule. rng drives frightened wandering.
func targetTile(g *Ghost, p *Player, chaser *Ghost, rng *rand.Rand, width, height int) maze.Tile {
	switch g.Mode {
	case ModeScatter:
		return g.ScatterCorner()
	case ModeEaten:
		return penExitTile
	case ModeFrightened:
		// Resampled uniformly at every decision point.
		return tile(rng.Intn(width), rng.Intn(height))
	}

	playerTile := p.Tile()

	switch g.Personality {
	case PersonalityAmbusher:
		return aheadOf(playerTile, p.Dir, 4)

	case PersonalityFlanker:
		// Pivot two tiles ahead of the player, then double the vector from
		// the chaser to the pivot.
		pivot := aheadOf(playerTile, p.Dir, 2)
		ct := chaser.Tile()
		return tile(2*pivot.Col-ct.Col, 2*pivot.Row-ct.Row)

	case PersonalityShy:
		// Beyond 8 tiles the shy ghost hunts; inside it retreats to its
		// scatter corner.
		if g.DistSq(p.X, p.Y) > 64 {
			return playerTile
		}
		return g.ScatterCorner()

	default:
		return playerTile
	}
}

// aheadOf projects n tiles ahead of a tile along a heading. When the heading
// is Up the projection also shifts n tiles left: this replicates the original
// arcade's address-overflow bug and must not be corrected.
func aheadOf(t maze.Tile, d Direction, n int) maze.Tile {
	dc, dr := d.Delta()
	out := tile(t.Col+n*dc, t.Row+n*dr)
	if d == DirUp {
		out.Col -= n
	}
	return out
}

// tileDistSq returns the squared distance between two tiles.
func tileDistSq(a, b maze.Tile) float64 {
	dc := float64(a.Col - b.Col)
	dr := float64(a.Row - b.Row)
	return dc*dc + dr*dr
}
