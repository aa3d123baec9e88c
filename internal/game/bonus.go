package game

// bonusItem is the transient bonus entity. It spawns at fixed consumption
// thresholds and disappears on consumption or timeout.
type bonusItem struct {
	Active bool
	timer  int
}

func (b *bonusItem) spawn() {
	b.Active = true
	b.timer = bonusDuration
}

// tick counts the bonus window down; timeout deactivates silently.
func (b *bonusItem) tick() {
	if !b.Active {
		return
	}
	b.timer--
	if b.timer <= 0 {
		b.Active = false
		b.timer = 0
	}
}

func (b *bonusItem) consume() {
	b.Active = false
	b.timer = 0
}

func (b *bonusItem) reset() {
	b.Active = false
	b.timer = 0
}
