package game

// PlayerState is the read-only per-tick view of the player actor.
type PlayerState struct {
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Dir         Direction `json:"dir"`
	FreezeTicks int       `json:"freeze_ticks"`
}

// GhostState is the read-only per-tick view of one ghost.
type GhostState struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Dir         Direction   `json:"dir"`
	Personality Personality `json:"personality"`
	Mode        Mode        `json:"mode"`
}

// BonusState is the read-only view of the bonus item.
type BonusState struct {
	Active bool `json:"active"`
	Col    int  `json:"col"`
	Row    int  `json:"row"`
	Value  int  `json:"value"`
}

// Snapshot is the full simulation view produced at the end of each tick.
// It is a copy; holding one never races with the next step.
type Snapshot struct {
	Level            int          `json:"level"`
	Score            int          `json:"score"`
	Lives            int          `json:"lives"`
	Player           PlayerState  `json:"player"`
	Ghosts           []GhostState `json:"ghosts"`
	PelletsRemaining int          `json:"pellets_remaining"`
	PowerRemaining   int          `json:"power_remaining"`
	Bonus            BonusState   `json:"bonus"`
	Over             bool         `json:"over"`
}
