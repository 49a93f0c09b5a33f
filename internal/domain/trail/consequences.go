package trail

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Clamp pulls every stat and resource back into its documented range.
func (p PlayerState) Clamp() PlayerState {
	p.Stats.Hunger = clamp(p.Stats.Hunger, MinStat, MaxStat)
	p.Stats.Style = clamp(p.Stats.Style, MinStat, MaxStat)
	p.Stats.Irony = clamp(p.Stats.Irony, MinStat, MaxStat)
	p.Stats.Authenticity = clamp(p.Stats.Authenticity, MinStat, MaxStat)
	p.Resources.BikeHealth = clamp(p.Resources.BikeHealth, MinStat, MaxStat)
	p.Resources.Vinyls = floorZero(p.Resources.Vinyls)
	p.Resources.Coffee = floorZero(p.Resources.Coffee)
	p.Progress = clamp(p.Progress, 0, ProgressGoal)
	return p
}

// Apply returns p with the choice's consequences and badge applied. Badges
// are append-only.
func (p PlayerState) Apply(choice Choice) PlayerState {
	c := choice.Consequences
	p.Stats.Hunger += c.Hunger
	p.Stats.Style += c.Style
	p.Stats.Irony += c.Irony
	p.Stats.Authenticity += c.Authenticity
	p.Resources.Vinyls += c.Vinyls
	p.Resources.Coffee += c.Coffee
	p.Resources.BikeHealth += c.BikeHealth
	p.Progress += c.Progress

	badges := make([]Badge, 0, len(p.Resources.Badges)+1)
	badges = append(badges, p.Resources.Badges...)
	if choice.Badge != nil {
		badges = append(badges, *choice.Badge)
	}
	p.Resources.Badges = badges
	return p.Clamp()
}

func (p PlayerState) Status() GameStatus {
	switch {
	case p.Progress >= ProgressGoal:
		return StatusWon
	case p.Stats.Hunger <= 0, p.Resources.BikeHealth <= 0:
		return StatusLost
	default:
		return StatusPlaying
	}
}

// NewPlayer seeds the starting state for a new run.
func NewPlayer(name, job string) PlayerState {
	return PlayerState{
		Name:     name,
		Job:      job,
		Location: "Portland",
		Stats: Stats{
			Hunger:       100,
			Style:        50,
			Irony:        50,
			Authenticity: 50,
		},
		Resources: Resources{
			Vinyls:     5,
			Coffee:     10,
			BikeHealth: 100,
			Badges:     []Badge{},
		},
	}
}
