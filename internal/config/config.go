package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk tuning surface (~/.grindstone.yaml by default).
// Everything has a sensible default; the file is optional.
type Config struct {
	DBPath  string  `yaml:"db_path"`
	Balance Balance `yaml:"balance"`
}

// Balance holds the economy knobs that are not part of the reward formula
// itself: the default daily goal and the fixed bonus/fee amounts.
type Balance struct {
	DefaultDailyGoal     float64 `yaml:"default_daily_goal"`
	GoalChangeCost       float64 `yaml:"goal_change_cost"`
	GoalCompletionReward float64 `yaml:"goal_completion_reward"`
	DailyGrindBonus      float64 `yaml:"daily_grind_bonus"`
}

func Default() Config {
	return Config{
		Balance: Balance{
			DefaultDailyGoal:     1.0,
			GoalChangeCost:       10.0,
			GoalCompletionReward: 25.0,
			DailyGrindBonus:      1.0,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".grindstone.yaml"), nil
}

// Load reads the config file at path, applies it over defaults and then env
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Resolve loads the config from GRINDSTONE_CONFIG or the default location.
func Resolve() (Config, error) {
	path := os.Getenv("GRINDSTONE_CONFIG")
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}
	return Load(path)
}
