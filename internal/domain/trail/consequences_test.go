package trail

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestPlayerApply_ClampsAndAppendsBadge(t *testing.T) {
	p := NewPlayer("Birch", "Barista")
	p.Stats.Hunger = 3
	p.Stats.Style = 98

	badge := &Badge{Emoji: "🎧", Description: "Heard it first"}
	got := p.Apply(Choice{
		ID:           ChoiceEmbrace,
		Consequences: Consequences{Hunger: -5, Style: 8, Coffee: -20, Progress: 10},
		Badge:        badge,
	})

	if got.Stats.Hunger != 0 {
		t.Fatalf("hunger mismatch: got=%d want=0", got.Stats.Hunger)
	}
	if got.Stats.Style != MaxStat {
		t.Fatalf("style mismatch: got=%d want=%d", got.Stats.Style, MaxStat)
	}
	if got.Resources.Coffee != 0 {
		t.Fatalf("coffee mismatch: got=%d want=0", got.Resources.Coffee)
	}
	if len(got.Resources.Badges) != 1 || got.Resources.Badges[0].Emoji != "🎧" {
		t.Fatalf("expected badge appended, got %+v", got.Resources.Badges)
	}
	if len(p.Resources.Badges) != 0 {
		t.Fatalf("apply must not mutate the receiver's badges")
	}
	if got.Status() != StatusLost {
		t.Fatalf("status mismatch: got=%q want=%q", got.Status(), StatusLost)
	}
}

func TestPlayerStatus(t *testing.T) {
	p := NewPlayer("Fennel", "DJ")
	if p.Status() != StatusPlaying {
		t.Fatalf("expected new player to be playing, got %q", p.Status())
	}
	p.Progress = ProgressGoal
	if p.Status() != StatusWon {
		t.Fatalf("expected won at goal, got %q", p.Status())
	}
	p.Progress = 10
	p.Resources.BikeHealth = 0
	if p.Status() != StatusLost {
		t.Fatalf("expected lost with broken bike, got %q", p.Status())
	}
}

func TestSynthesizeChoices_RangesAndBadge(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	badge := &Badge{Emoji: "🚲", Description: "Fixed gear"}
	for i := 0; i < 200; i++ {
		choices := SynthesizeChoices(rng.IntN, badge)
		if len(choices) != 2 {
			t.Fatalf("expected 2 choices, got %d", len(choices))
		}
		embrace, safe := choices[0], choices[1]
		if embrace.ID != ChoiceEmbrace || safe.ID != ChoicePlayItSafe {
			t.Fatalf("unexpected choice ids: %q %q", embrace.ID, safe.ID)
		}
		if h := embrace.Consequences.Hunger; h < -5 || h > -2 {
			t.Fatalf("embrace hunger out of range: %d", h)
		}
		if p := embrace.Consequences.Progress; p < 8 || p > 12 {
			t.Fatalf("embrace progress out of range: %d", p)
		}
		if h := safe.Consequences.Hunger; h < -3 || h > -1 {
			t.Fatalf("safe hunger out of range: %d", h)
		}
		if embrace.Badge == nil || embrace.Badge.Emoji != "🚲" {
			t.Fatalf("expected badge on embrace choice")
		}
		if safe.Badge != nil {
			t.Fatalf("play it safe must not carry a badge")
		}
	}
}

func TestSynthesizeChoices_NoBadge(t *testing.T) {
	choices := SynthesizeChoices(func(int) int { return 0 }, nil)
	if choices[0].Badge != nil {
		t.Fatalf("expected no badge without a scenario badge")
	}
	if got := choices[0].Consequences.Hunger; got != -5 {
		t.Fatalf("expected range minimum with zero draw, got %d", got)
	}
}

func TestChoiceTuningCheck_Bounds(t *testing.T) {
	if err := EmbraceTuning.Check(Consequences{Hunger: -2, Style: 8, Irony: 2, Authenticity: -4, Coffee: -1, Progress: 12}); err != nil {
		t.Fatalf("expected range edges to pass, got %v", err)
	}
	if err := EmbraceTuning.Check(Consequences{Hunger: -2, Style: 8, Irony: 2, Authenticity: -4, Coffee: -1, Progress: 13}); !errors.Is(err, ErrConsequenceOutOfRange) {
		t.Fatalf("expected ErrConsequenceOutOfRange, got %v", err)
	}
	if _, ok := TuningFor("flee"); ok {
		t.Fatalf("unknown choice must have no tuning")
	}
}
