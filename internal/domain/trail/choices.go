package trail

import (
	"errors"
	"fmt"
)

// IntN returns a uniform integer in [0, n). math/rand/v2's IntN and
// (*rand.Rand).IntN both fit.
type IntN func(n int) int

func (r Range) draw(intn IntN) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + intn(r.Max-r.Min+1)
}

func (t ChoiceTuning) Draw(intn IntN) Consequences {
	return Consequences{
		Hunger:       t.Hunger.draw(intn),
		Style:        t.Style.draw(intn),
		Irony:        t.Irony.draw(intn),
		Authenticity: t.Authenticity.draw(intn),
		Vinyls:       t.Vinyls.draw(intn),
		Coffee:       t.Coffee.draw(intn),
		BikeHealth:   t.BikeHealth.draw(intn),
		Progress:     t.Progress.draw(intn),
	}
}

// SynthesizeChoices builds the two fixed-shape choices of a turn. The badge,
// if any, only rides on the embrace choice.
func SynthesizeChoices(intn IntN, badge *Badge) []Choice {
	embrace := Choice{
		ID:           ChoiceEmbrace,
		Text:         "Embrace the weirdness",
		Consequences: EmbraceTuning.Draw(intn),
	}
	if badge != nil {
		b := *badge
		embrace.Badge = &b
	}
	safe := Choice{
		ID:           ChoicePlayItSafe,
		Text:         "Play it safe",
		Consequences: PlayItSafeTuning.Draw(intn),
	}
	return []Choice{embrace, safe}
}

var ErrConsequenceOutOfRange = errors.New("consequence out of range")

// TuningFor returns the ranges a choice's consequences are drawn from.
func TuningFor(id ChoiceID) (ChoiceTuning, bool) {
	switch id {
	case ChoiceEmbrace:
		return EmbraceTuning, true
	case ChoicePlayItSafe:
		return PlayItSafeTuning, true
	default:
		return ChoiceTuning{}, false
	}
}

// Check rejects consequences that Draw could never have produced.
func (t ChoiceTuning) Check(c Consequences) error {
	fields := []struct {
		name string
		r    Range
		v    int
	}{
		{"hunger", t.Hunger, c.Hunger},
		{"style", t.Style, c.Style},
		{"irony", t.Irony, c.Irony},
		{"authenticity", t.Authenticity, c.Authenticity},
		{"vinyls", t.Vinyls, c.Vinyls},
		{"coffee", t.Coffee, c.Coffee},
		{"bikeHealth", t.BikeHealth, c.BikeHealth},
		{"progress", t.Progress, c.Progress},
	}
	for _, f := range fields {
		if f.v < f.r.Min || f.v > f.r.Max {
			return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrConsequenceOutOfRange, f.name, f.v, f.r.Min, f.r.Max)
		}
	}
	return nil
}
