package config

import (
	"os"
	"strconv"
)

// applyEnv overrides config values from environment variables.
// Unset or unparsable values leave the config untouched.
func applyEnv(cfg *Config) {
	if p := os.Getenv("GRINDSTONE_DB"); p != "" {
		cfg.DBPath = p
	}
	if v, ok := getEnvFloat("GRINDSTONE_DAILY_GOAL"); ok && v > 0 {
		cfg.Balance.DefaultDailyGoal = v
	}
	if v, ok := getEnvFloat("GRINDSTONE_GOAL_CHANGE_COST"); ok && v >= 0 {
		cfg.Balance.GoalChangeCost = v
	}
	if v, ok := getEnvFloat("GRINDSTONE_GOAL_COMPLETION_REWARD"); ok && v >= 0 {
		cfg.Balance.GoalCompletionReward = v
	}
	if v, ok := getEnvFloat("GRINDSTONE_DAILY_GRIND_BONUS"); ok && v >= 0 {
		cfg.Balance.DailyGrindBonus = v
	}
}

func getEnvFloat(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
