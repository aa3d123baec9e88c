package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allLegal(Direction) bool { return true }

func only(dirs ...Direction) func(Direction) bool {
	set := make(map[Direction]bool, len(dirs))
	for _, d := range dirs {
		set[d] = true
	}
	return func(d Direction) bool { return set[d] }
}

func TestChooseDirection_MinimizesDistance(t *testing.T) {
	g := ghostAt(PersonalityChaser, 10, 10, ModeChase)
	g.Dir = DirDown // reverse (up) excluded

	// Target to the right: right is strictly closest among left/down/right.
	got := chooseDirection(g, tile(20, 10), testRand(), allLegal)
	assert.Equal(t, DirRight, got)
}

func TestChooseDirection_TieBreakUsesPriorityOrder(t *testing.T) {
	g := ghostAt(PersonalityChaser, 10, 10, ModeChase)
	g.Dir = DirNone

	// Target is the ghost's own tile: all four moves are equidistant, so
	// the first in Up, Left, Down, Right order wins.
	got := chooseDirection(g, tile(10, 10), testRand(), allLegal)
	assert.Equal(t, DirUp, got)
}

func TestChooseDirection_ExcludesReverse(t *testing.T) {
	g := ghostAt(PersonalityChaser, 10, 10, ModeChase)
	g.Dir = DirRight

	// Target directly behind: the reverse (left) would be closest but is
	// excluded, so the distance tie between up and down falls to up.
	got := chooseDirection(g, tile(0, 10), testRand(), only(DirUp, DirDown, DirLeft, DirRight))
	assert.Equal(t, DirUp, got)
}

func TestChooseDirection_ForcedReversalTaken(t *testing.T) {
	g := ghostAt(PersonalityChaser, 10, 10, ModeChase)
	g.Dir = DirRight
	g.forceReverse = true

	got := chooseDirection(g, tile(20, 10), testRand(), allLegal)
	assert.Equal(t, DirLeft, got)
	assert.False(t, g.forceReverse, "flag is consumed exactly once")

	// The next decision is back to normal.
	got = chooseDirection(g, tile(20, 10), testRand(), allLegal)
	assert.Equal(t, DirRight, got)
}

func TestChooseDirection_DeadEndReversesUnconditionally(t *testing.T) {
	g := ghostAt(PersonalityChaser, 10, 10, ModeChase)
	g.Dir = DirUp

	// Only the way the ghost came from is open.
	got := chooseDirection(g, tile(20, 10), testRand(), only(DirDown))
	assert.Equal(t, DirDown, got)
}

func TestChooseDirection_FrightenedPicksAmongLegal(t *testing.T) {
	g := ghostAt(PersonalityChaser, 10, 10, ModeFrightened)
	g.Dir = DirRight
	legal := only(DirUp, DirDown, DirRight)

	rng := testRand()
	for i := 0; i < 50; i++ {
		got := chooseDirection(g, tile(0, 0), rng, legal)
		assert.Contains(t, []Direction{DirUp, DirDown, DirRight}, got)
		assert.NotEqual(t, DirLeft, got, "reverse stays excluded when frightened")
	}
}
