package engine

// streakDays counts consecutive qualifying days ending at (or adjacent to)
// today. A day qualifies when its unmultiplied earnings reach the daily goal;
// the streak's own multiplier must not feed back into this check. An
// unfinished today is skipped rather than breaking the run, so yesterday's
// streak survives until local midnight.
func streakDays(completed []Instance, dailyGoal float64, today string) int {
	if dailyGoal <= 0 {
		return 0
	}

	totals := map[string]float64{}
	for _, inst := range completed {
		totals[inst.Date] += Reward(inst)
	}

	meetsGoal := map[string]bool{}
	for date, earnings := range totals {
		if earnings >= dailyGoal {
			meetsGoal[date] = true
		}
	}
	if len(meetsGoal) == 0 {
		return 0
	}

	day, err := ParseDate(today)
	if err != nil {
		return 0
	}
	if !meetsGoal[FormatDate(day)] {
		// Grace for the in-progress day: anchor on yesterday.
		day = prevDay(day)
	}

	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		if !meetsGoal[FormatDate(day)] {
			break
		}
		streak++
		day = prevDay(day)
	}
	return streak
}
