package engine

import "strings"

// Difficulty is a mission's difficulty tier. Stored as its display string.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultySavage Difficulty = "Savage"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultySavage:
		return true
	default:
		return false
	}
}

// ParseDifficulty normalizes user input to a Difficulty. Unrecognized input
// returns false; stored-but-unknown values still flow through the reward
// formula with a zero base reward rather than failing aggregation.
func ParseDifficulty(input string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "easy":
		return DifficultyEasy, true
	case "medium", "med":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	case "savage":
		return DifficultySavage, true
	default:
		return "", false
	}
}

// RecurrenceRule describes which dates a recurring mission materializes on.
type RecurrenceRule string

const (
	RecurDaily    RecurrenceRule = "Daily"
	RecurWeekly   RecurrenceRule = "Weekly"
	RecurWeekdays RecurrenceRule = "Weekdays"
	RecurWeekends RecurrenceRule = "Weekends"
)

func (r RecurrenceRule) IsValid() bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurWeekdays, RecurWeekends:
		return true
	default:
		return false
	}
}

func ParseRecurrenceRule(input string) (RecurrenceRule, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "daily":
		return RecurDaily, true
	case "weekly":
		return RecurWeekly, true
	case "weekdays":
		return RecurWeekdays, true
	case "weekends":
		return RecurWeekends, true
	default:
		return "", false
	}
}
