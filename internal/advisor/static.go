package advisor

import (
	"context"
	"fmt"

	"grindstone/internal/engine"
)

// Static is an offline Advisor. It needs no network and no credentials,
// which keeps the CLI usable without any external service configured.
type Static struct{}

var _ Advisor = Static{}

var staticOdds = map[engine.Difficulty]float64{
	engine.DifficultyEasy:   0.5,
	engine.DifficultyMedium: 1.0,
	engine.DifficultyHard:   2.0,
	engine.DifficultySavage: 4.0,
}

var staticStories = map[engine.Difficulty]string{
	engine.DifficultyEasy:   "A warm-up. Knock it out before the coffee cools.",
	engine.DifficultyMedium: "A fair fight. Show up and the day is yours.",
	engine.DifficultyHard:   "This one bites back. Bring your full attention.",
	engine.DifficultySavage: "Few attempt this. Fewer finish. Be the exception.",
}

func (Static) MissionStory(_ context.Context, m engine.Instance) (string, error) {
	story, ok := staticStories[m.Difficulty]
	if !ok {
		story = "Uncharted territory. Set your own terms and go."
	}
	return fmt.Sprintf("%s: %s", m.Description, story), nil
}

func (Static) BettingOdds(_ context.Context, m engine.Instance) (float64, string, error) {
	mult, ok := staticOdds[m.Difficulty]
	if !ok {
		mult = 1.0
	}
	rationale := fmt.Sprintf("house odds for %s missions", m.Difficulty)
	if !ok {
		rationale = "default odds for unrated missions"
	}
	return mult, rationale, nil
}
