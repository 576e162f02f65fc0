package engine

import (
	"sort"

	"grindstone/internal/storage"
)

// Snapshot is a read-only view of the full application state, assembled from
// the store in one pass. Stats derivation never mutates it.
type Snapshot struct {
	Missions  map[string][]storage.Mission // keyed by date
	Recurring []storage.RecurringMission
	Diary     map[string]storage.DiaryEntry
	Goals     []storage.Goal
	DailyGoal float64
	Character storage.Character
}

type DailyScore struct {
	Date           string
	Earnings       float64
	TasksCompleted int
	Grade          string
}

type CategoryScore struct {
	Category       string
	Earnings       float64
	TasksCompleted int
}

type ObjectiveScore struct {
	GoalID          string
	GoalLabel       string
	GoalDescription string
	Earnings        float64
	TasksCompleted  int
}

type Stats struct {
	Streak           int
	StreakMultiplier float64
	DailyScores      []DailyScore
	CategoryScores   []CategoryScore
	ObjectiveScores  []ObjectiveScore
	TotalEarnings    float64
	CurrentBalance   float64
	TotalGP          float64
}

// ComputeStats derives the full read-only statistics for one render pass.
// The streak is computed first from unmultiplied rewards; its multiplier is
// then applied uniformly to every earnings figure.
func ComputeStats(snap Snapshot, today string) Stats {
	completed := CompletedInstances(snap)

	streak := streakDays(completed, snap.DailyGoal, today)
	multiplier := 1 + float64(streak)*StreakMultiplierBase

	daily := dailyScores(completed, snap.Diary, multiplier)
	categories := categoryScores(completed, multiplier)
	objectives := objectiveScores(completed, snap.Goals, multiplier)

	totalTaskEarnings := 0.0
	for _, s := range daily {
		totalTaskEarnings += s.Earnings
	}
	totalEarnings := totalTaskEarnings + snap.Character.Bonuses
	currentBalance := totalEarnings - snap.Character.Spent

	return Stats{
		Streak:           streak,
		StreakMultiplier: multiplier,
		DailyScores:      daily,
		CategoryScores:   categories,
		ObjectiveScores:  objectives,
		TotalEarnings:    totalEarnings,
		CurrentBalance:   currentBalance,
		TotalGP:          totalEarnings * GPPerEarning,
	}
}

func dailyScores(completed []Instance, diary map[string]storage.DiaryEntry, multiplier float64) []DailyScore {
	byDate := map[string]*DailyScore{}
	for _, inst := range completed {
		s := byDate[inst.Date]
		if s == nil {
			s = &DailyScore{Date: inst.Date}
			byDate[inst.Date] = s
		}
		s.Earnings += Reward(inst) * multiplier
		s.TasksCompleted++
	}

	out := make([]DailyScore, 0, len(byDate))
	for date, s := range byDate {
		if e, ok := diary[date]; ok && e.Grade != nil {
			s.Grade = *e.Grade
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func categoryScores(completed []Instance, multiplier float64) []CategoryScore {
	byCategory := map[string]*CategoryScore{}
	for _, inst := range completed {
		s := byCategory[inst.Category]
		if s == nil {
			s = &CategoryScore{Category: inst.Category}
			byCategory[inst.Category] = s
		}
		s.Earnings += Reward(inst) * multiplier
		s.TasksCompleted++
	}

	out := make([]CategoryScore, 0, len(byCategory))
	for _, s := range byCategory {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Earnings != out[j].Earnings {
			return out[i].Earnings > out[j].Earnings
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func objectiveScores(completed []Instance, goals []storage.Goal, multiplier float64) []ObjectiveScore {
	active := map[string]storage.Goal{}
	for _, g := range goals {
		if !g.Completed {
			active[g.ID] = g
		}
	}

	byGoal := map[string]*ObjectiveScore{}
	for _, inst := range completed {
		if inst.AlignedGoalID == nil {
			continue
		}
		goal, ok := active[*inst.AlignedGoalID]
		if !ok {
			// Aligned to a completed or deleted goal: excluded, not an error.
			continue
		}
		s := byGoal[goal.ID]
		if s == nil {
			s = &ObjectiveScore{GoalID: goal.ID, GoalDescription: goal.Description}
			if goal.Label != nil {
				s.GoalLabel = *goal.Label
			}
			byGoal[goal.ID] = s
		}
		s.Earnings += Reward(inst) * multiplier
		s.TasksCompleted++
	}

	out := make([]ObjectiveScore, 0, len(byGoal))
	for _, s := range byGoal {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Earnings != out[j].Earnings {
			return out[i].Earnings > out[j].Earnings
		}
		return out[i].GoalID < out[j].GoalID
	})
	return out
}
