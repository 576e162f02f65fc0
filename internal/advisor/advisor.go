// Package advisor is the boundary to the motivational-feedback service. The
// scoring engine never depends on it; callers treat its output as opaque text.
package advisor

import (
	"context"

	"grindstone/internal/engine"
)

// Advisor produces motivational copy and betting odds for missions.
type Advisor interface {
	// MissionStory returns a short motivational blurb for a freshly added
	// or selected mission.
	MissionStory(ctx context.Context, m engine.Instance) (string, error)

	// BettingOdds proposes a payout multiplier and a one-line rationale for
	// wagering on the mission.
	BettingOdds(ctx context.Context, m engine.Instance) (multiplier float64, rationale string, err error)
}
