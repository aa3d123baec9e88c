package game

import "time"

// Simulation timing
const (
	TickRate     = 60 // simulation steps per second
	TickInterval = time.Second / TickRate
)

// Base movement speed in tiles per tick (8 tiles/second at full multiplier).
const baseSpeed = 8.0 / TickRate

// Tile-center tolerances (in tiles). Turns commit within the looser corner
// tolerance; wall stops and steering decisions use the tight one.
const (
	centerTolerance = 0.03
	cornerTolerance = 0.08
)

// Scoring
const (
	PelletPoints    = 10
	PowerPoints     = 50
	GhostBasePoints = 200 // doubled per consecutive capture in one power window
	ExtraLifeScore  = 10000
)

// Player movement freezes, in ticks.
const (
	pelletFreeze  = 1
	powerFreeze   = 3
	captureFreeze = 20 // after eating a ghost
)

// Run setup
const (
	StartLives = 3
	MaxLevel   = 256 // level counter caps at the kill screen
)

// Pen release thresholds: items consumed in the current level before each
// ghost leaves the pen. The chaser starts outside and has no threshold.
var releaseThresholds = map[Personality]int{
	PersonalityAmbusher: 0,
	PersonalityFlanker:  30,
	PersonalityShy:      60,
}

// Cruise-elroy thresholds on remaining item count.
const (
	elroy1Remaining = 40
	elroy2Remaining = 20
)

// Pen geometry (tile-unit coordinates).
const (
	penExitCol = 13.5 // exit column, shared by the vertical leave path
	penExitRow = 11.5 // row just above the gate
	penHomeRow = 14.5 // inside the pen
)

// penExitTile is where an eaten ghost re-enters the pen.
var penExitTile = tile(13, 11)

// Bonus item
const (
	bonusFirstAt  = 70  // items consumed before first spawn
	bonusSecondAt = 170 // items consumed before second spawn
	bonusDuration = 10 * TickRate
)

var bonusTile = tile(13, 17)

// Player start position.
const (
	playerStartX = 13.5
	playerStartY = 23.5
)
