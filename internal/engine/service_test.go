package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"grindstone/internal/config"
	"grindstone/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Frozen clock so "today" is stable across the whole test.
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)
	svc := NewService(db, config.Default().Balance, WithClock(func() time.Time { return now }))
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func addMission(t *testing.T, svc *Service, date, desc string, diff Difficulty) Instance {
	t.Helper()
	inst, err := svc.AddMission(context.Background(), AddMissionInput{
		Date:          date,
		Description:   desc,
		Difficulty:    diff,
		Category:      "General",
		EstimatedTime: 30,
	})
	if err != nil {
		t.Fatalf("AddMission: %v", err)
	}
	return inst
}

func TestAddMissionValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	cases := []AddMissionInput{
		{Date: "2026-08-28", Difficulty: DifficultyEasy, EstimatedTime: 10},                                                    // no description
		{Date: "28/08/2026", Description: "x", Difficulty: DifficultyEasy, EstimatedTime: 10},                                  // bad date
		{Date: "2026-08-28", Description: "x", Difficulty: "Nightmare", EstimatedTime: 10},                                     // bad difficulty
		{Date: "2026-08-28", Description: "x", Difficulty: DifficultyEasy},                                                     // no estimate
		{Date: "2026-08-28", Description: "x", Difficulty: DifficultyEasy, EstimatedTime: 10, GoalAlignment: intPtr(9)},        // bad alignment
		{Date: "2026-08-28", Description: "x", Difficulty: DifficultyEasy, EstimatedTime: 10, Recurrence: "Fortnightly"},       // bad recurrence
	}
	for i, in := range cases {
		if _, err := svc.AddMission(ctx, in); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestAddMissionAutoAlignsToActiveGoal(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	g, err := svc.AddGoal(ctx, AddGoalInput{Description: "Ship the side project", Label: "Side Project"})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	inst, err := svc.AddMission(ctx, AddMissionInput{
		Date:          "2026-08-28",
		Description:   "Write the README",
		Difficulty:    DifficultyMedium,
		Category:      "side project", // case-insensitive label match
		EstimatedTime: 45,
	})
	if err != nil {
		t.Fatalf("AddMission: %v", err)
	}
	if inst.AlignedGoalID == nil || *inst.AlignedGoalID != g.ID {
		t.Fatalf("mission not aligned to goal: %+v", inst)
	}
	if inst.GoalAlignment == nil || *inst.GoalAlignment != 5 {
		t.Fatalf("auto-aligned mission should get alignment 5, got %v", inst.GoalAlignment)
	}

	// Completing the goal stops future auto-alignment.
	if _, err := svc.CompleteGoal(ctx, g.ID, "shipped"); err != nil {
		t.Fatalf("CompleteGoal: %v", err)
	}
	inst2, err := svc.AddMission(ctx, AddMissionInput{
		Date:          "2026-08-28",
		Description:   "Polish the README",
		Difficulty:    DifficultyEasy,
		Category:      "Side Project",
		EstimatedTime: 15,
	})
	if err != nil {
		t.Fatalf("AddMission: %v", err)
	}
	if inst2.AlignedGoalID != nil {
		t.Fatalf("mission aligned to a completed goal")
	}
	if inst2.GoalAlignment == nil || *inst2.GoalAlignment != DefaultGoalAlignment {
		t.Fatalf("alignment=%v, want default", inst2.GoalAlignment)
	}
}

func TestConfirmCompletionPaysPendingBet(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inst := addMission(t, svc, "2026-08-28", "Finish the report", DifficultyHard)
	if _, err := svc.PlaceBet(ctx, "2026-08-28", inst.ID, 10, 3); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	// Double bets are rejected.
	if _, err := svc.PlaceBet(ctx, "2026-08-28", inst.ID, 5, 2); err == nil {
		t.Fatalf("expected error placing a second bet")
	}

	res, err := svc.ConfirmCompletion(ctx, "2026-08-28", inst.ID, 60)
	if err != nil {
		t.Fatalf("ConfirmCompletion: %v", err)
	}
	if !res.BetWon {
		t.Fatalf("expected bet to be won")
	}
	if !almostEqual(res.BetPayout, 40) {
		t.Fatalf("payout=%v, want 40", res.BetPayout)
	}
	if res.Mission.Bet.Won == nil || !*res.Mission.Bet.Won {
		t.Fatalf("bet not resolved won: %+v", res.Mission.Bet)
	}

	c, err := svc.CharacterRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if !almostEqual(c.Bonuses, 40+1) { // payout + daily grind bonus (only mission of the day)
		t.Fatalf("bonuses=%v, want 41", c.Bonuses)
	}

	// Re-completing fails.
	if _, err := svc.ConfirmCompletion(ctx, "2026-08-28", inst.ID, 60); err == nil {
		t.Fatalf("expected error completing twice")
	}
}

func TestDeclineBetClearsPendingWager(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inst := addMission(t, svc, "2026-08-28", "Risky errand", DifficultyMedium)
	if _, err := svc.DeclineBet(ctx, "2026-08-28", inst.ID); err == nil {
		t.Fatalf("expected error declining with no bet")
	}

	if _, err := svc.PlaceBet(ctx, "2026-08-28", inst.ID, 10, 2); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	cleared, err := svc.DeclineBet(ctx, "2026-08-28", inst.ID)
	if err != nil {
		t.Fatalf("DeclineBet: %v", err)
	}
	if cleared.Bet.Placed {
		t.Fatalf("bet still placed after decline")
	}

	// A fresh bet can replace the withdrawn one, and completion pays it out.
	if _, err := svc.PlaceBet(ctx, "2026-08-28", inst.ID, 4, 1); err != nil {
		t.Fatalf("PlaceBet again: %v", err)
	}
	res, err := svc.ConfirmCompletion(ctx, "2026-08-28", inst.ID, 20)
	if err != nil {
		t.Fatalf("ConfirmCompletion: %v", err)
	}
	if !res.BetWon || !almostEqual(res.BetPayout, 8) {
		t.Fatalf("payout=%v won=%v, want 8/true", res.BetPayout, res.BetWon)
	}
}

func TestDailyGrindBonusAwardedOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	a := addMission(t, svc, "2026-08-28", "first", DifficultyEasy)
	b := addMission(t, svc, "2026-08-28", "second", DifficultyEasy)

	res, err := svc.ConfirmCompletion(ctx, "2026-08-28", a.ID, 10)
	if err != nil {
		t.Fatalf("complete a: %v", err)
	}
	if res.GrindBonus != 0 {
		t.Fatalf("bonus awarded with missions still open")
	}

	res, err = svc.ConfirmCompletion(ctx, "2026-08-28", b.ID, 10)
	if err != nil {
		t.Fatalf("complete b: %v", err)
	}
	if !almostEqual(res.GrindBonus, 1) {
		t.Fatalf("grind bonus=%v, want 1", res.GrindBonus)
	}

	// Undo and redo must not double-pay.
	if err := svc.Uncomplete(ctx, "2026-08-28", b.ID); err != nil {
		t.Fatalf("Uncomplete: %v", err)
	}
	res, err = svc.ConfirmCompletion(ctx, "2026-08-28", b.ID, 10)
	if err != nil {
		t.Fatalf("re-complete b: %v", err)
	}
	if res.GrindBonus != 0 {
		t.Fatalf("grind bonus paid twice")
	}
}

func TestSweepForfeitsExpiredBetsOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inst := addMission(t, svc, "2026-08-27", "Yesterday's dare", DifficultyMedium)
	if _, err := svc.PlaceBet(ctx, "2026-08-27", inst.ID, 10, 2); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	res, ran, err := svc.RunDailySweep(ctx)
	if err != nil {
		t.Fatalf("RunDailySweep: %v", err)
	}
	if !ran {
		t.Fatalf("first sweep of the day should run")
	}
	if res.Resolved != 1 || !almostEqual(res.Forfeited, 10) {
		t.Fatalf("sweep result %+v, want 1 resolved / 10 forfeited", res)
	}

	c, err := svc.CharacterRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if !almostEqual(c.Spent, 10) {
		t.Fatalf("spent=%v, want 10", c.Spent)
	}

	// Same day: the sweep is a no-op.
	if _, ran, err := svc.RunDailySweep(ctx); err != nil || ran {
		t.Fatalf("second sweep ran=%v err=%v, want no-op", ran, err)
	}
	// Even forced, the already-lost bet cannot be forfeited again.
	res2, err := svc.SettleExpiredBets(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("SettleExpiredBets: %v", err)
	}
	if res2.Resolved != 0 || res2.Forfeited != 0 {
		t.Fatalf("re-settle result %+v, want zero", res2)
	}

	// Completing a mission whose bet was swept lost does not pay out.
	cres, err := svc.ConfirmCompletion(ctx, "2026-08-27", inst.ID, 30)
	if err != nil {
		t.Fatalf("ConfirmCompletion: %v", err)
	}
	if cres.BetWon || cres.BetPayout != 0 {
		t.Fatalf("lost bet paid out: %+v", cres)
	}
}

func TestSweepSettlesRecurringBets(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inst, err := svc.AddMission(ctx, AddMissionInput{
		Date:          "2026-08-20",
		Description:   "Morning run",
		Difficulty:    DifficultyMedium,
		Category:      "Health",
		EstimatedTime: 30,
		Recurrence:    RecurDaily,
	})
	if err != nil {
		t.Fatalf("AddMission: %v", err)
	}
	if _, err := svc.PlaceBet(ctx, "2026-08-27", inst.MasterID, 5, 2); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	res, err := svc.SettleExpiredBets(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("SettleExpiredBets: %v", err)
	}
	if res.Resolved != 1 || !almostEqual(res.Forfeited, 5) {
		t.Fatalf("sweep result %+v, want 1 resolved / 5 forfeited", res)
	}

	// Today's occurrence is untouched and still bettable.
	if _, err := svc.PlaceBet(ctx, "2026-08-28", inst.MasterID, 5, 2); err != nil {
		t.Fatalf("PlaceBet today: %v", err)
	}
}

func TestRecurringCompletionByMasterAndCompositeID(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inst, err := svc.AddMission(ctx, AddMissionInput{
		Date:          "2026-08-25",
		Description:   "Journal",
		Difficulty:    DifficultyEasy,
		Category:      "Reflection",
		EstimatedTime: 10,
		Recurrence:    RecurDaily,
	})
	if err != nil {
		t.Fatalf("AddMission: %v", err)
	}

	if _, err := svc.ConfirmCompletion(ctx, "2026-08-26", inst.MasterID, 10); err != nil {
		t.Fatalf("complete by master id: %v", err)
	}
	if _, err := svc.ConfirmCompletion(ctx, "", inst.MasterID+"_2026-08-27", 10); err != nil {
		t.Fatalf("complete by composite id: %v", err)
	}

	missions, err := svc.MissionsOn(ctx, "2026-08-26")
	if err != nil {
		t.Fatalf("MissionsOn: %v", err)
	}
	if len(missions) != 1 || !missions[0].Completed {
		t.Fatalf("occurrence not completed: %+v", missions)
	}
	missions, err = svc.MissionsOn(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("MissionsOn: %v", err)
	}
	if len(missions) != 1 || missions[0].Completed {
		t.Fatalf("unrelated occurrence affected: %+v", missions)
	}
}

func TestGoalEconomics(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	g, err := svc.AddGoal(ctx, AddGoalInput{Description: "Learn the banjo", TargetDate: "2026-12-31"})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	if _, err := svc.ChangeGoal(ctx, g.ID, "Learn the fiddle"); err != nil {
		t.Fatalf("ChangeGoal: %v", err)
	}
	done, err := svc.CompleteGoal(ctx, g.ID, "recital video")
	if err != nil {
		t.Fatalf("CompleteGoal: %v", err)
	}
	if !done.Completed || done.CompletionDate == nil || *done.CompletionDate != "2026-08-28" {
		t.Fatalf("goal completion state %+v", done)
	}
	if _, err := svc.CompleteGoal(ctx, g.ID, ""); err == nil {
		t.Fatalf("expected error completing twice")
	}
	if _, err := svc.ChangeGoal(ctx, g.ID, "again"); err == nil {
		t.Fatalf("expected error changing a completed goal")
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	// +25 completion reward, -10 change fee.
	if !almostEqual(stats.TotalEarnings, 25) {
		t.Fatalf("total earnings=%v, want 25", stats.TotalEarnings)
	}
	if !almostEqual(stats.CurrentBalance, 15) {
		t.Fatalf("balance=%v, want 15", stats.CurrentBalance)
	}
}

func TestDailyGoalSetting(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	goal, err := svc.DailyGoal(ctx)
	if err != nil {
		t.Fatalf("DailyGoal: %v", err)
	}
	if !almostEqual(goal, 1.0) {
		t.Fatalf("default daily goal=%v, want 1.0", goal)
	}

	if err := svc.SetDailyGoal(ctx, 0.5); err != nil {
		t.Fatalf("SetDailyGoal: %v", err)
	}
	goal, err = svc.DailyGoal(ctx)
	if err != nil {
		t.Fatalf("DailyGoal: %v", err)
	}
	if !almostEqual(goal, 0.5) {
		t.Fatalf("daily goal=%v, want 0.5", goal)
	}
	if err := svc.SetDailyGoal(ctx, -1); err == nil {
		t.Fatalf("expected error for negative goal")
	}
}

func TestDiaryGradesAndNotes(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.SetGrade(ctx, "2026-08-28", " a+ "); err != nil {
		t.Fatalf("SetGrade: %v", err)
	}
	if err := svc.SetGrade(ctx, "2026-08-28", "E"); err == nil {
		t.Fatalf("expected error for invalid grade")
	}
	if err := svc.SetReflection(ctx, "2026-08-28", "Slept well."); err != nil {
		t.Fatalf("SetReflection: %v", err)
	}
	if err := svc.SetDebrief(ctx, "2026-08-28", "Solid day."); err != nil {
		t.Fatalf("SetDebrief: %v", err)
	}

	e, err := svc.DiaryRepo().Get(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("diary get: %v", err)
	}
	if e == nil || e.Grade == nil || *e.Grade != "A+" {
		t.Fatalf("grade not normalized/stored: %+v", e)
	}
	if e.Reflection == nil || e.Debrief == nil {
		t.Fatalf("notes not stored: %+v", e)
	}
}

func TestDeleteMission(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	inst := addMission(t, svc, "2026-08-28", "ephemeral", DifficultyEasy)
	if err := svc.DeleteMission(ctx, inst.ID); err != nil {
		t.Fatalf("DeleteMission: %v", err)
	}
	if err := svc.DeleteMission(ctx, inst.ID); err == nil {
		t.Fatalf("expected not-found on second delete")
	}

	missions, err := svc.MissionsOn(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("MissionsOn: %v", err)
	}
	if len(missions) != 0 {
		t.Fatalf("mission still present after delete")
	}
}
