package game

// levelSpeeds holds the speed fractions for one level bracket, as a share
// of the base speed.
type levelSpeeds struct {
	player      float64
	ghost       float64
	ghostFright float64
	ghostTunnel float64
	elroy1      float64
	elroy2      float64
}

// Levels bucket into three brackets: 1, 2-4 and 5+. Early levels are slower
// and grant longer scatter phases.
const (
	bracketOne  = 0
	bracketMid  = 1
	bracketLate = 2
)

func levelBracket(level int) int {
	switch {
	case level <= 1:
		return bracketOne
	case level <= 4:
		return bracketMid
	default:
		return bracketLate
	}
}

var speedBrackets = [3]levelSpeeds{
	bracketOne:  {player: 0.80, ghost: 0.75, ghostFright: 0.50, ghostTunnel: 0.40, elroy1: 0.80, elroy2: 0.85},
	bracketMid:  {player: 0.90, ghost: 0.85, ghostFright: 0.55, ghostTunnel: 0.45, elroy1: 0.90, elroy2: 0.95},
	bracketLate: {player: 1.00, ghost: 0.95, ghostFright: 0.60, ghostTunnel: 0.50, elroy1: 1.00, elroy2: 1.05},
}

func speedsFor(level int) levelSpeeds {
	return speedBrackets[levelBracket(level)]
}

// frightSeconds is the frightened-mode duration per level. Levels past the
// table get zero: power items only reverse the ghosts.
var frightSeconds = []int{
	6, 5, 4, 3, 2, 5, 2, 2, 1, 5, 2, 1, 1, 3, 1, 1, 0, 1,
}

// FrightTicks returns the frightened countdown for a level, in ticks.
func FrightTicks(level int) int {
	if level < 1 || level > len(frightSeconds) {
		return 0
	}
	return frightSeconds[level-1] * TickRate
}

// bonusRewards maps levels to bonus-item point values; level 13 and beyond
// all pay the top reward.
var bonusRewards = []int{
	100, 300, 500, 500, 700, 700, 1000, 1000, 2000, 2000, 3000, 3000, 5000,
}

// BonusReward returns the bonus-item reward for a level.
func BonusReward(level int) int {
	if level < 1 {
		level = 1
	}
	if level > len(bonusRewards) {
		level = len(bonusRewards)
	}
	return bonusRewards[level-1]
}

// modePhase is one entry of the global scatter/chase timeline. A negative
// duration marks the terminal phase.
type modePhase struct {
	seconds int
	mode    Mode
}

// modeTimelines lists, per bracket, the (duration, mode) pairs driving the
// global pursuer mode. Durations are in seconds.
var modeTimelines = [3][]modePhase{
	bracketOne: {
		{7, ModeScatter}, {20, ModeChase},
		{7, ModeScatter}, {20, ModeChase},
		{5, ModeScatter}, {20, ModeChase},
		{5, ModeScatter}, {-1, ModeChase},
	},
	bracketMid: {
		{7, ModeScatter}, {20, ModeChase},
		{7, ModeScatter}, {20, ModeChase},
		{5, ModeScatter}, {1033, ModeChase},
		{1, ModeScatter}, {-1, ModeChase},
	},
	bracketLate: {
		{5, ModeScatter}, {20, ModeChase},
		{5, ModeScatter}, {20, ModeChase},
		{5, ModeScatter}, {1037, ModeChase},
		{1, ModeScatter}, {-1, ModeChase},
	},
}

func timelineFor(level int) []modePhase {
	return modeTimelines[levelBracket(level)]
}
