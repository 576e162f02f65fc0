package engine

import (
	"time"

	"grindstone/internal/storage"
)

// Instance is the uniform, materialized view of a mission on one date: either
// a one-off mission or a recurring mission's synthesized instance for that
// date. Every aggregator consumes Instances so membership and defaulting are
// decided in exactly one place.
type Instance struct {
	ID            string
	MasterID      string // set when synthesized from a recurring mission
	Date          string
	Description   string
	Difficulty    Difficulty
	Category      string
	Completed     bool
	EstimatedTime int
	ActualTime    *int
	GoalAlignment *int
	AlignedGoalID *string
	ScheduledAt   *string
	Bet           storage.Bet
}

func (i Instance) Recurring() bool { return i.MasterID != "" }

// OccursOn reports whether a recurring mission materializes on the given date.
func OccursOn(rm storage.RecurringMission, date string) bool {
	day, err := ParseDate(date)
	if err != nil {
		return false
	}
	start, err := ParseDate(rm.StartDate)
	if err != nil {
		return false
	}
	if day.Before(start) {
		return false
	}

	switch RecurrenceRule(rm.Recurrence) {
	case RecurDaily:
		return true
	case RecurWeekly:
		return day.Weekday() == start.Weekday()
	case RecurWeekdays:
		return day.Weekday() >= time.Monday && day.Weekday() <= time.Friday
	case RecurWeekends:
		return day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
	default:
		return false
	}
}

func fromMission(m storage.Mission) Instance {
	return Instance{
		ID:            m.ID,
		Date:          m.Date,
		Description:   m.Description,
		Difficulty:    Difficulty(m.Difficulty),
		Category:      m.Category,
		Completed:     m.Completed,
		EstimatedTime: m.EstimatedTime,
		ActualTime:    m.ActualTime,
		GoalAlignment: m.GoalAlignment,
		AlignedGoalID: m.AlignedGoalID,
		ScheduledAt:   m.ScheduledAt,
		Bet:           m.Bet,
	}
}

func fromRecurring(rm storage.RecurringMission, date string) Instance {
	inst := Instance{
		ID:            rm.ID + "_" + date,
		MasterID:      rm.ID,
		Date:          date,
		Description:   rm.Description,
		Difficulty:    Difficulty(rm.Difficulty),
		Category:      rm.Category,
		EstimatedTime: rm.EstimatedTime,
		GoalAlignment: rm.GoalAlignment,
		AlignedGoalID: rm.AlignedGoalID,
		ScheduledAt:   rm.ScheduledAt,
	}
	if c, ok := rm.Completions[date]; ok {
		inst.Completed = c.Completed
		inst.ActualTime = c.ActualTime
		if c.ScheduledAt != nil {
			inst.ScheduledAt = c.ScheduledAt
		}
		inst.Bet = c.Bet
	}
	return inst
}

// InstancesOn materializes the full mission set for one date: one-off missions
// stored under that date plus an instance of every recurring mission whose
// rule matches it.
func InstancesOn(snap Snapshot, date string) []Instance {
	var out []Instance
	for _, m := range snap.Missions[date] {
		out = append(out, fromMission(m))
	}
	for _, rm := range snap.Recurring {
		if OccursOn(rm, date) {
			out = append(out, fromRecurring(rm, date))
		}
	}
	return out
}

// CompletedInstances returns every completed instance across all dates:
// completed one-off missions plus every recurring completions entry marked
// complete. All earnings aggregation runs over this set.
func CompletedInstances(snap Snapshot) []Instance {
	var out []Instance
	for _, missions := range snap.Missions {
		for _, m := range missions {
			if m.Completed {
				out = append(out, fromMission(m))
			}
		}
	}
	for _, rm := range snap.Recurring {
		for date, c := range rm.Completions {
			if c.Completed {
				out = append(out, fromRecurring(rm, date))
			}
		}
	}
	return out
}
