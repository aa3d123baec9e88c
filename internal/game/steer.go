package game

import (
	"math/rand"

	"github.com/mazehunt/mazehunt-server/internal/maze"
)

// chooseDirection picks a ghost's next heading at a tile center. legal
// reports whether a heading may be taken out of the ghost's tile.
//
// The reverse of the current heading is normally excluded. A forced
// reversal (mode flip or frightened entry) consumes the flag exactly once
// and takes the reverse outright when it is legal; in a dead end the
// reversal is taken unconditionally.
func chooseDirection(g *Ghost, target maze.Tile, rng *rand.Rand, legal func(Direction) bool) Direction {
	reverse := g.Dir.Reverse()
	forced := g.forceReverse
	g.forceReverse = false

	if forced && reverse != DirNone && legal(reverse) {
		return reverse
	}

	var candidates []Direction
	for _, d := range steerOrder {
		if d == reverse {
			continue
		}
		if legal(d) {
			candidates = append(candidates, d)
		}
	}

	if len(candidates) == 0 {
		// Dead end: the reversal is taken unconditionally.
		return reverse
	}

	if g.Mode == ModeFrightened {
		return candidates[rng.Intn(len(candidates))]
	}

	from := g.Tile()
	best := candidates[0]
	bestDist := -1.0
	for _, d := range candidates {
		dc, dr := d.Delta()
		next := tile(from.Col+dc, from.Row+dr)
		dist := tileDistSq(next, target)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = d
		}
	}
	return best
}
