package storage

// Bet captures the optional wager attached to a mission. Won is nil while the
// bet is unresolved, true after a paid-out win and false after a forfeit.
type Bet struct {
	Placed     bool    `json:"placed,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
	Won        *bool   `json:"won,omitempty"`
}

// Mission is a one-off task bound to a single date (YYYY-MM-DD).
type Mission struct {
	ID            string
	Date          string
	Description   string
	Difficulty    string
	Category      string
	Completed     bool
	EstimatedTime int  // minutes
	ActualTime    *int // minutes, set on completion
	GoalAlignment *int // 1-5
	AlignedGoalID *string
	Justification *string
	ScheduledAt   *string // HH:MM
	Bet           Bet
}

// Completion is the per-date completion state of a recurring mission.
type Completion struct {
	Completed   bool    `json:"completed"`
	ActualTime  *int    `json:"actualTime"`
	ScheduledAt *string `json:"time,omitempty"`
	Bet         Bet     `json:"bet,omitempty"`
}

// RecurringMission is a template that materializes one mission instance per
// matching date. Completions is the sole source of per-date state.
type RecurringMission struct {
	ID            string
	Description   string
	Difficulty    string
	Category      string
	Recurrence    string
	StartDate     string
	EstimatedTime int
	GoalAlignment *int
	AlignedGoalID *string
	Justification *string
	ScheduledAt   *string
	Completions   map[string]Completion
}

type Goal struct {
	ID              string
	Description     string
	TargetDate      string
	Label           *string
	Completed       bool
	CompletionDate  *string
	CompletionProof *string
}

type DiaryEntry struct {
	Date       string
	Reflection *string
	Debrief    *string
	Grade      *string
}

type Character struct {
	Key     string
	Bonuses float64
	Spent   float64
}
