package trail

const (
	MinStat = 0
	MaxStat = 100

	ProgressGoal = 100

	UpcycleBatchSize = 3
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// ChoiceTuning holds the consequence ranges one synthesized choice draws from.
type ChoiceTuning struct {
	Hunger       Range
	Style        Range
	Irony        Range
	Authenticity Range
	Vinyls       Range
	Coffee       Range
	BikeHealth   Range
	Progress     Range
}

var EmbraceTuning = ChoiceTuning{
	Hunger:       Range{Min: -5, Max: -2},
	Style:        Range{Min: 3, Max: 8},
	Irony:        Range{Min: 2, Max: 6},
	Authenticity: Range{Min: -4, Max: -1},
	Coffee:       Range{Min: -1, Max: -1},
	BikeHealth:   Range{Min: -5, Max: 0},
	Progress:     Range{Min: 8, Max: 12},
}

var PlayItSafeTuning = ChoiceTuning{
	Hunger:       Range{Min: -3, Max: -1},
	Style:        Range{Min: -2, Max: 0},
	Irony:        Range{Min: -2, Max: 0},
	Authenticity: Range{Min: 1, Max: 3},
	Vinyls:       Range{Min: 0, Max: 1},
	BikeHealth:   Range{Min: -2, Max: 0},
	Progress:     Range{Min: 4, Max: 6},
}
