package game

import (
	"math/rand"
	"time"

	"github.com/mazehunt/mazehunt-server/internal/maze"
)

// Options configure a new Simulation.
type Options struct {
	// Layout overrides the default maze layout.
	Layout []string
	// KillScreen enables the level-256 grid corruption. Off by default;
	// the glitch is never triggered implicitly.
	KillScreen bool
	// Rand drives frightened targeting and wandering. Defaults to a
	// time-seeded source; tests inject a fixed seed for determinism.
	Rand *rand.Rand
}

// Simulation owns all mutable game state and advances it one tick at a
// time. A single goroutine must own a Simulation: every actor update within
// a tick runs sequentially in a fixed order (player, then ghosts in
// personality order, then collision resolution), and that ordering is part
// of the contract.
type Simulation struct {
	mz         *maze.Maze
	rng        *rand.Rand
	killScreen bool

	level          int
	score          int
	lives          int
	extraLifeGiven bool
	over           bool

	player *Player
	ghosts [4]*Ghost

	pellets         map[maze.Tile]bool
	power           map[maze.Tile]bool
	itemsEatenLevel int

	sched *modeScheduler
	combo int
	bonus bonusItem

	events []Event
}

// NewSimulation builds a level-1 simulation. A malformed layout is fatal
// here; the core never attempts partial recovery mid-level.
func NewSimulation(opts Options) (*Simulation, error) {
	layout := opts.Layout
	if layout == nil {
		layout = maze.DefaultLayout
	}
	mz, err := maze.Parse(layout)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Simulation{
		mz:         mz,
		rng:        rng,
		killScreen: opts.KillScreen,
		player:     NewPlayer(),
	}
	for i, p := range Personalities {
		s.ghosts[i] = NewGhost(p)
	}
	s.Reset()
	return s, nil
}

// Reset starts a fresh run: level 1, full lives, zero score.
func (s *Simulation) Reset() {
	s.level = 1
	s.score = 0
	s.lives = StartLives
	s.extraLifeGiven = false
	s.over = false
	s.startLevel()
}

// StartLevel jumps the run to the given level with repopulated items and
// reset actors. Score and lives carry over.
func (s *Simulation) StartLevel(level int) {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	s.level = level
	s.startLevel()
	if s.killScreen && s.level == MaxLevel {
		s.mz.ApplyKillScreen(s.rng)
		s.populateItems()
	}
}

// startLevel repopulates the item sets and resets actors and timers for the
// current level.
func (s *Simulation) startLevel() {
	s.populateItems()
	s.itemsEatenLevel = 0
	s.resetActors()
}

func (s *Simulation) populateItems() {
	s.pellets = make(map[maze.Tile]bool)
	for _, t := range s.mz.PelletTiles() {
		s.pellets[t] = true
	}
	s.power = make(map[maze.Tile]bool)
	for _, t := range s.mz.PowerPelletTiles() {
		s.power[t] = true
	}
}

// resetActors returns all actors to start positions and restarts the mode
// timeline. Item sets are untouched: items persist across a life loss
// within the same level.
func (s *Simulation) resetActors() {
	s.player.ResetPosition()
	s.player.FreezeTicks = 0
	for _, g := range s.ghosts {
		g.Reset()
	}
	s.sched = newModeScheduler(s.level)
	s.combo = 0
	s.bonus.reset()
}

// QueueHeading applies the external heading intent as the player's queued
// heading. DirNone (unrecognized input) is ignored.
func (s *Simulation) QueueHeading(d Direction) {
	s.player.QueueHeading(d)
}

// Step advances the simulation one tick and returns the discrete events it
// produced. After the run has ended Step is a no-op.
func (s *Simulation) Step() []Event {
	s.events = s.events[:0]
	if s.over {
		return nil
	}

	sp := speedsFor(s.level)

	s.player.Update(baseSpeed*sp.player, s.mz.Width(), s.playerLegal)
	s.consumeItems()

	// Level completion is exactly "both sets empty" and fires at most once
	// per level, on the tick that emptied them.
	if len(s.pellets) == 0 && len(s.power) == 0 {
		s.completeLevel()
		return s.events
	}

	s.bonus.tick()

	if s.sched.Step() {
		mode := s.sched.Mode()
		for _, g := range s.ghosts {
			if g.Mode.Active() {
				g.Mode = mode
				g.forceReverse = true
			}
		}
	}

	s.releaseFromPen()

	for _, g := range s.ghosts {
		s.updateGhost(g, sp)
	}

	s.resolveCollisions()
	return s.events
}

// playerLegal reports whether the player may head d out of its tile. The
// player never crosses the pen gate.
func (s *Simulation) playerLegal(d Direction) bool {
	t := s.player.Tile()
	dc, dr := d.Delta()
	return s.mz.Passable(tile(t.Col+dc, t.Row+dr), false)
}

// ghostLegal reports whether a ghost may head d out of its tile. Gates open
// only for eaten or pen-leaving ghosts; the upward restriction near the pen
// applies to every ghost that is not returning eaten.
func (s *Simulation) ghostLegal(g *Ghost, d Direction) bool {
	t := g.Tile()
	if d == DirUp && g.Mode != ModeEaten && s.mz.UpForbidden(t) {
		return false
	}
	dc, dr := d.Delta()
	gatePass := g.Mode == ModeEaten || g.Mode == ModeLeavingPen
	return s.mz.Passable(tile(t.Col+dc, t.Row+dr), gatePass)
}

func (s *Simulation) consumeItems() {
	pt := s.player.Tile()

	switch {
	case s.pellets[pt]:
		delete(s.pellets, pt)
		s.score += PelletPoints
		s.itemsEatenLevel++
		s.player.ItemsEaten++
		s.player.Freeze(pelletFreeze)
		s.events = append(s.events, itemEvent(EventItemEaten, pt, PelletPoints))
		s.maybeSpawnBonus()
		s.checkExtraLife()

	case s.power[pt]:
		delete(s.power, pt)
		s.score += PowerPoints
		s.itemsEatenLevel++
		s.player.ItemsEaten++
		s.player.Freeze(powerFreeze)
		s.combo = 0
		ft := FrightTicks(s.level)
		for _, g := range s.ghosts {
			g.EnterFrightened(ft)
		}
		s.events = append(s.events, itemEvent(EventPowerItemEaten, pt, PowerPoints))
		s.maybeSpawnBonus()
		s.checkExtraLife()
	}

	if s.bonus.Active && pt == bonusTile {
		s.bonus.consume()
		reward := BonusReward(s.level)
		s.score += reward
		s.events = append(s.events, itemEvent(EventBonusConsumed, bonusTile, reward))
		s.checkExtraLife()
	}
}

func (s *Simulation) maybeSpawnBonus() {
	if s.itemsEatenLevel == bonusFirstAt || s.itemsEatenLevel == bonusSecondAt {
		s.bonus.spawn()
		s.events = append(s.events, itemEvent(EventBonusSpawned, bonusTile, BonusReward(s.level)))
	}
}

func (s *Simulation) checkExtraLife() {
	if !s.extraLifeGiven && s.score >= ExtraLifeScore {
		s.extraLifeGiven = true
		s.lives++
		s.events = append(s.events, Event{Type: EventExtraLife})
	}
}

// releaseFromPen frees pen-held ghosts whose item-count threshold has been
// reached in the current level.
func (s *Simulation) releaseFromPen() {
	for _, g := range s.ghosts {
		if g.Mode == ModeInPen && s.itemsEatenLevel >= releaseThresholds[g.Personality] {
			g.Mode = ModeLeavingPen
		}
	}
}

func (s *Simulation) updateGhost(g *Ghost, sp levelSpeeds) {
	switch g.Mode {
	case ModeInPen:
		// Waiting; the in-pen bobbing is presentation data.
		return
	case ModeLeavingPen:
		s.leavePen(g, sp)
		return
	}

	if g.Mode == ModeFrightened {
		g.frightTicks--
		if g.frightTicks <= 0 {
			g.frightTicks = 0
			g.Mode = s.sched.Mode()
		}
	}

	speed := s.ghostSpeed(g, sp)
	tol := decisionTol(speed)

	if g.Mode == ModeEaten && g.AtCenter(tol) && g.Tile() == penExitTile {
		g.Mode = ModeLeavingPen
		g.X, g.Y = penExitCol, penHomeRow
		g.Dir = DirNone
		return
	}

	if g.AtCenter(tol) {
		g.SnapToCenter()
		target := targetTile(g, s.player, s.ghosts[0], s.rng, s.mz.Width(), s.mz.Height())
		g.Dir = chooseDirection(g, target, s.rng, func(d Direction) bool {
			return s.ghostLegal(g, d)
		})
	}

	g.Advance(speed, s.mz.Width())
}

// leavePen nudges a ghost along the fixed vertical exit path. On reaching
// the exit row it adopts the current global mode with the initial heading.
func (s *Simulation) leavePen(g *Ghost, sp levelSpeeds) {
	speed := baseSpeed * sp.ghost * 0.5

	// Center on the exit column first.
	if g.X < penExitCol-centerTolerance {
		g.X += speed
		if g.X > penExitCol {
			g.X = penExitCol
		}
		return
	}
	if g.X > penExitCol+centerTolerance {
		g.X -= speed
		if g.X < penExitCol {
			g.X = penExitCol
		}
		return
	}
	g.X = penExitCol

	g.Y -= speed
	if g.Y <= penExitRow {
		g.Y = penExitRow
		g.Mode = s.sched.Mode()
		g.Dir = DirLeft
	}
}

// ghostSpeed applies the modal multiplier: full speed in chase/scatter with
// the cruise-elroy boost for the chaser, reduced when frightened, doubled
// when eaten, and the tunnel fraction inside the slow band.
func (s *Simulation) ghostSpeed(g *Ghost, sp levelSpeeds) float64 {
	frac := sp.ghost
	switch g.Mode {
	case ModeFrightened:
		frac = sp.ghostFright
	case ModeEaten:
		frac = sp.ghost * 2
	default:
		if g.Personality == PersonalityChaser && g.Mode == ModeChase {
			remaining := len(s.pellets) + len(s.power)
			if remaining <= elroy2Remaining {
				frac = sp.elroy2
			} else if remaining <= elroy1Remaining {
				frac = sp.elroy1
			}
		}
	}
	if g.Mode != ModeEaten && s.mz.InTunnelBand(g.Tile()) {
		frac = sp.ghostTunnel
	}
	return baseSpeed * frac
}

// resolveCollisions tests same-tile occupancy between the player and every
// ghost outside the pen, in fixed personality order.
func (s *Simulation) resolveCollisions() {
	pt := s.player.Tile()
	for _, g := range s.ghosts {
		if g.Mode == ModeInPen || g.Mode == ModeLeavingPen {
			continue
		}
		if g.Tile() != pt {
			continue
		}

		switch g.Mode {
		case ModeFrightened:
			points := GhostBasePoints << s.combo
			s.combo++
			s.score += points
			g.Mode = ModeEaten
			g.frightTicks = 0
			s.player.Freeze(captureFreeze)
			s.events = append(s.events, Event{Type: EventPursuerEaten, Value: points})
			s.checkExtraLife()
		case ModeEaten:
			// Pass-through.
		default:
			s.loseLife()
			return
		}
	}
}

func (s *Simulation) loseLife() {
	s.lives--
	s.events = append(s.events, Event{Type: EventPlayerCaptured})
	if s.lives <= 0 {
		s.over = true
		s.events = append(s.events, Event{Type: EventGameOver, Value: s.score})
		return
	}
	// Items persist within the level; only actors and timers reset.
	s.resetActors()
}

func (s *Simulation) completeLevel() {
	s.events = append(s.events, Event{Type: EventLevelCleared, Value: s.level})
	next := s.level + 1
	if next > MaxLevel {
		next = MaxLevel
	}
	s.StartLevel(next)
}

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Simulation) Lives() int { return s.lives }

// Level returns the current level index.
func (s *Simulation) Level() int { return s.level }

// Over reports whether the run has ended.
func (s *Simulation) Over() bool { return s.over }

// GridWidth returns the maze width in tiles.
func (s *Simulation) GridWidth() int { return s.mz.Width() }

// GridHeight returns the maze height in tiles.
func (s *Simulation) GridHeight() int { return s.mz.Height() }

// ItemTiles returns the remaining pellet and power-pellet tiles, for
// clients that need full membership at session start.
func (s *Simulation) ItemTiles() (pellets, power []maze.Tile) {
	for t := range s.pellets {
		pellets = append(pellets, t)
	}
	for t := range s.power {
		power = append(power, t)
	}
	return pellets, power
}

// Snapshot builds the read-only end-of-tick view.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Level: s.level,
		Score: s.score,
		Lives: s.lives,
		Player: PlayerState{
			X: s.player.X, Y: s.player.Y,
			Dir:         s.player.Dir,
			FreezeTicks: s.player.FreezeTicks,
		},
		Ghosts:           make([]GhostState, 0, len(s.ghosts)),
		PelletsRemaining: len(s.pellets),
		PowerRemaining:   len(s.power),
		Bonus: BonusState{
			Active: s.bonus.Active,
			Col:    bonusTile.Col,
			Row:    bonusTile.Row,
			Value:  BonusReward(s.level),
		},
		Over: s.over,
	}
	for _, g := range s.ghosts {
		snap.Ghosts = append(snap.Ghosts, GhostState{
			X: g.X, Y: g.Y,
			Dir:         g.Dir,
			Personality: g.Personality,
			Mode:        g.Mode,
		})
	}
	return snap
}
