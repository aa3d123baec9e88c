package game

// modeScheduler drives the global scatter/chase timeline from the current
// level's phase list. Once the terminal phase is reached the mode never
// changes again for the remainder of the level.
type modeScheduler struct {
	phases []modePhase
	index  int
	timer  int
}

func newModeScheduler(level int) *modeScheduler {
	return &modeScheduler{phases: timelineFor(level)}
}

// Mode returns the current global mode.
func (s *modeScheduler) Mode() Mode {
	return s.phases[s.index].mode
}

// Step advances the timeline one tick and reports whether the global mode
// flipped on this tick.
func (s *modeScheduler) Step() bool {
	phase := s.phases[s.index]
	if phase.seconds < 0 || s.index == len(s.phases)-1 {
		return false
	}

	s.timer++
	if s.timer < phase.seconds*TickRate {
		return false
	}

	s.index++
	s.timer = 0
	return s.phases[s.index].mode != phase.mode
}
