package engine

// DifficultyRewards is the fixed base reward per difficulty tier.
var DifficultyRewards = map[Difficulty]float64{
	DifficultyEasy:   0.05,
	DifficultyMedium: 0.15,
	DifficultyHard:   0.25,
	DifficultySavage: 0.50,
}

const (
	// TimeRewardPerMinute is earned for every minute of logged actual time.
	TimeRewardPerMinute = 0.002

	// StreakMultiplierBase is the per-streak-day earnings bonus (0.5%).
	StreakMultiplierBase = 0.005

	// DefaultGoalAlignment applies when a mission has no alignment score.
	DefaultGoalAlignment = 3

	// GPPerEarning converts earnings to the cosmetic GP scale.
	GPPerEarning = 100.0

	// StreakLookbackDays bounds the backward streak walk on sparse history.
	StreakLookbackDays = 3650
)

// Reward computes the unmultiplied reward of a completed mission instance.
// This is the single place where defaulting policy lives: missing actual time
// counts as 0, a missing alignment score counts as DefaultGoalAlignment, and
// an unknown difficulty contributes a zero base reward instead of an error so
// aggregation stays total.
func Reward(inst Instance) float64 {
	baseReward := DifficultyRewards[inst.Difficulty]

	timeReward := 0.0
	if inst.ActualTime != nil {
		timeReward = float64(*inst.ActualTime) * TimeRewardPerMinute
	}

	alignment := DefaultGoalAlignment
	if inst.GoalAlignment != nil && *inst.GoalAlignment != 0 {
		alignment = *inst.GoalAlignment
	}

	return (baseReward + timeReward) * float64(alignment) / 5
}
