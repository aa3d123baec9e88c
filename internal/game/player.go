package game

// Player is the item-collecting actor.
type Player struct {
	Actor

	// FreezeTicks suspends movement after eating; the timer is part of core
	// timing even though the chewing animation itself is presentation data.
	FreezeTicks int

	// ItemsEaten counts items consumed across the whole run.
	ItemsEaten int
}

// NewPlayer creates the player at its start tile, stopped.
func NewPlayer() *Player {
	return &Player{
		Actor: Actor{
			X: playerStartX, Y: playerStartY,
			startX: playerStartX, startY: playerStartY,
			startDir: DirNone,
		},
	}
}

// QueueHeading records the requested heading. DirNone leaves the queued
// heading unchanged, so unrecognized input is simply ignored.
func (p *Player) QueueHeading(d Direction) {
	if d == DirNone {
		return
	}
	p.NextDir = d
}

// Update advances the player one tick. legal reports whether a heading may
// be taken out of a tile.
func (p *Player) Update(speed float64, width int, legal func(Direction) bool) {
	if p.FreezeTicks > 0 {
		p.FreezeTicks--
		return
	}

	// Commit the queued turn when close enough to a tile center.
	if p.NextDir != DirNone && p.AtCenter(cornerTolerance) && legal(p.NextDir) {
		p.SnapToCenter()
		p.Dir = p.NextDir
		p.NextDir = DirNone
	}

	// Stop rather than clip into a wall.
	if p.Dir != DirNone && p.AtCenter(decisionTol(speed)) && !legal(p.Dir) {
		p.SnapToCenter()
		p.Dir = DirNone
	}

	if p.Dir != DirNone {
		p.Advance(speed, width)
	}
}

// Freeze suspends movement for at least n ticks.
func (p *Player) Freeze(n int) {
	if n > p.FreezeTicks {
		p.FreezeTicks = n
	}
}
