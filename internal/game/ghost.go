package game

import (
	"encoding/json"

	"github.com/mazehunt/mazehunt-server/internal/maze"
)

// Mode is a ghost's behavior state. Transitions follow a fixed machine:
// InPen→LeavingPen→{Scatter,Chase}; {Scatter,Chase}→Frightened→{Scatter,Chase};
// any active mode→Eaten→LeavingPen. No other edges are legal.
type Mode int

const (
	ModeScatter Mode = iota
	ModeChase
	ModeFrightened
	ModeEaten
	ModeInPen
	ModeLeavingPen
)

func (m Mode) String() string {
	switch m {
	case ModeScatter:
		return "scatter"
	case ModeChase:
		return "chase"
	case ModeFrightened:
		return "frightened"
	case ModeEaten:
		return "eaten"
	case ModeInPen:
		return "in_pen"
	case ModeLeavingPen:
		return "leaving_pen"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Mode as a string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses the string form produced by MarshalJSON.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, candidate := range []Mode{
		ModeScatter, ModeChase, ModeFrightened, ModeEaten, ModeInPen, ModeLeavingPen,
	} {
		if candidate.String() == s {
			*m = candidate
			return nil
		}
	}
	*m = ModeScatter
	return nil
}

// Active reports whether the ghost participates in collisions and responds
// to the global scatter/chase timeline.
func (m Mode) Active() bool {
	return m == ModeScatter || m == ModeChase
}

// Personality selects a ghost's chase-targeting rule.
type Personality int

const (
	PersonalityChaser   Personality = iota // targets the player directly
	PersonalityAmbusher                    // targets 4 tiles ahead of the player
	PersonalityFlanker                     // doubles the chaser-to-pivot vector
	PersonalityShy                         // backs off inside 8 tiles
)

// Personalities lists all four in their fixed update order.
var Personalities = [4]Personality{
	PersonalityChaser, PersonalityAmbusher, PersonalityFlanker, PersonalityShy,
}

func (p Personality) String() string {
	switch p {
	case PersonalityChaser:
		return "chaser"
	case PersonalityAmbusher:
		return "ambusher"
	case PersonalityFlanker:
		return "flanker"
	case PersonalityShy:
		return "shy"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Personality as a string.
func (p Personality) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses the string form produced by MarshalJSON.
func (p *Personality) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, candidate := range Personalities {
		if candidate.String() == s {
			*p = candidate
			return nil
		}
	}
	*p = PersonalityChaser
	return nil
}

// scatterCorners are the fixed per-personality scatter targets, deliberately
// outside the visible grid.
var scatterCorners = map[Personality]maze.Tile{
	PersonalityChaser:   tile(25, -3),
	PersonalityAmbusher: tile(2, -3),
	PersonalityFlanker:  tile(27, 31),
	PersonalityShy:      tile(0, 31),
}

// ghostStarts holds start position, start mode and initial heading. The
// chaser begins outside the pen above the gate; the rest wait inside.
var ghostStarts = map[Personality]struct {
	x, y float64
	mode Mode
	dir  Direction
}{
	PersonalityChaser:   {penExitCol, penExitRow, ModeScatter, DirLeft},
	PersonalityAmbusher: {penExitCol, penHomeRow, ModeInPen, DirNone},
	PersonalityFlanker:  {11.5, penHomeRow, ModeInPen, DirNone},
	PersonalityShy:      {15.5, penHomeRow, ModeInPen, DirNone},
}

// Ghost is one pursuer actor.
type Ghost struct {
	Actor
	Personality Personality
	Mode        Mode

	// frightTicks counts down the frightened window. Clamped at zero.
	frightTicks int

	// forceReverse makes the next steering decision take the reverse
	// heading; it is consumed exactly once.
	forceReverse bool
}

// NewGhost creates a ghost at its start position.
func NewGhost(p Personality) *Ghost {
	s := ghostStarts[p]
	return &Ghost{
		Actor: Actor{
			X: s.x, Y: s.y,
			startX: s.x, startY: s.y,
			startDir: s.dir,
		},
		Personality: p,
		Mode:        s.mode,
	}
}

// ScatterCorner returns the ghost's fixed scatter target.
func (g *Ghost) ScatterCorner() maze.Tile {
	return scatterCorners[g.Personality]
}

// EnterFrightened puts an active ghost into the frightened state with the
// given countdown and reverses its heading immediately. Ghosts that are
// eaten or in the pen are unaffected. A zero duration only reverses.
func (g *Ghost) EnterFrightened(ticks int) {
	if !g.Mode.Active() && g.Mode != ModeFrightened {
		return
	}
	g.Dir = g.Dir.Reverse()
	if ticks <= 0 {
		return
	}
	g.Mode = ModeFrightened
	g.frightTicks = ticks
}

// Reset returns the ghost to its start position, mode and timers.
func (g *Ghost) Reset() {
	g.ResetPosition()
	s := ghostStarts[g.Personality]
	g.Mode = s.mode
	g.frightTicks = 0
	g.forceReverse = false
}
