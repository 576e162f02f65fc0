package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &testDB{
		missions:  NewMissionRepo(db),
		recurring: NewRecurringRepo(db),
		goals:     NewGoalRepo(db),
		diary:     NewDiaryRepo(db),
		character: NewCharacterRepo(db),
		settings:  NewSettingsRepo(db),
		bonuses:   NewGrindBonusRepo(db),
	}
}

type testDB struct {
	missions  *MissionRepo
	recurring *RecurringRepo
	goals     *GoalRepo
	diary     *DiaryRepo
	character *CharacterRepo
	settings  *SettingsRepo
	bonuses   *GrindBonusRepo
}

func TestMissionRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	actual := 45
	align := 4
	goalID := "goal-1"
	at := "09:30"
	won := true
	m := &Mission{
		ID:            "m1",
		Date:          "2026-08-28",
		Description:   "Write the quarterly review",
		Difficulty:    "Hard",
		Category:      "Work",
		Completed:     true,
		EstimatedTime: 60,
		ActualTime:    &actual,
		GoalAlignment: &align,
		AlignedGoalID: &goalID,
		ScheduledAt:   &at,
		Bet:           Bet{Placed: true, Amount: 10, Multiplier: 2, Won: &won},
	}
	require.NoError(t, db.missions.Insert(ctx, m))

	got, err := db.missions.Get(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m, got)

	missing, err := db.missions.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byDate, err := db.missions.ListByDate(ctx, "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, byDate, 1)
}

func TestMissionUpdateRequiresExistingRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	err := db.missions.Update(ctx, &Mission{ID: "ghost", Date: "2026-08-28"})
	assert.Error(t, err)
}

func TestListUnresolvedBetsBefore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	lost := false
	rows := []*Mission{
		{ID: "old-pending", Date: "2026-08-26", Bet: Bet{Placed: true, Amount: 5, Multiplier: 2}},
		{ID: "old-resolved", Date: "2026-08-26", Bet: Bet{Placed: true, Amount: 5, Multiplier: 2, Won: &lost}},
		{ID: "old-done", Date: "2026-08-26", Completed: true, Bet: Bet{Placed: true, Amount: 5, Multiplier: 2}},
		{ID: "old-nobet", Date: "2026-08-26"},
		{ID: "today", Date: "2026-08-28", Bet: Bet{Placed: true, Amount: 5, Multiplier: 2}},
	}
	for _, m := range rows {
		m.Difficulty = "Easy"
		m.EstimatedTime = 10
		require.NoError(t, db.missions.Insert(ctx, m))
	}

	expired, err := db.missions.ListUnresolvedBetsBefore(ctx, "2026-08-28")
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "old-pending", expired[0].ID)
}

func TestRecurringCompletionsPersist(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	rm := &RecurringMission{
		ID:            "r1",
		Description:   "Meditate",
		Difficulty:    "Easy",
		Category:      "Health",
		Recurrence:    "Daily",
		StartDate:     "2026-08-01",
		EstimatedTime: 15,
		Completions:   map[string]Completion{},
	}
	require.NoError(t, db.recurring.Insert(ctx, rm))

	actual := 20
	require.NoError(t, db.recurring.SetCompletion(ctx, "r1", "2026-08-28", Completion{
		Completed:  true,
		ActualTime: &actual,
		Bet:        Bet{Placed: true, Amount: 3, Multiplier: 1.5},
	}))

	got, err := db.recurring.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	c, ok := got.Completions["2026-08-28"]
	require.True(t, ok)
	assert.True(t, c.Completed)
	require.NotNil(t, c.ActualTime)
	assert.Equal(t, 20, *c.ActualTime)
	assert.True(t, c.Bet.Placed)
	assert.Nil(t, c.Bet.Won)

	// A legacy row with no completions scans to a usable empty map.
	rm2 := &RecurringMission{
		ID: "r2", Description: "Walk", Difficulty: "Easy", Category: "Health",
		Recurrence: "Daily", StartDate: "2026-08-01", EstimatedTime: 10,
	}
	require.NoError(t, db.recurring.Insert(ctx, rm2))
	got2, err := db.recurring.Get(ctx, "r2")
	require.NoError(t, err)
	require.NotNil(t, got2)
	assert.NotNil(t, got2.Completions)
	assert.Empty(t, got2.Completions)
}

func TestSetCompletionMissingMission(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	err := db.recurring.SetCompletion(ctx, "ghost", "2026-08-28", Completion{Completed: true})
	assert.Error(t, err)
}

func TestDiaryUpsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	grade := "B+"
	require.NoError(t, db.diary.Upsert(ctx, &DiaryEntry{Date: "2026-08-28", Grade: &grade}))

	reflection := "Started early."
	require.NoError(t, db.diary.Upsert(ctx, &DiaryEntry{Date: "2026-08-28", Grade: &grade, Reflection: &reflection}))

	got, err := db.diary.Get(ctx, "2026-08-28")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B+", *got.Grade)
	assert.Equal(t, "Started early.", *got.Reflection)
	assert.Nil(t, got.Debrief)

	all, err := db.diary.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCharacterGetOrCreate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	c, err := db.character.GetOrCreateMain(ctx)
	require.NoError(t, err)
	assert.Equal(t, MainCharacterKey, c.Key)
	assert.Zero(t, c.Bonuses)

	c.Bonuses = 12.5
	c.Spent = 2.5
	require.NoError(t, db.character.Update(ctx, c))

	again, err := db.character.GetOrCreateMain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.5, again.Bonuses)
	assert.Equal(t, 2.5, again.Spent)
}

func TestSettingsFloatFallback(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	v, err := db.settings.GetFloat(ctx, SettingDailyGoal, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	require.NoError(t, db.settings.SetFloat(ctx, SettingDailyGoal, 0.75))
	v, err = db.settings.GetFloat(ctx, SettingDailyGoal, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)

	_, ok, err := db.settings.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrindBonusMarkedOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	awarded, err := db.bonuses.Awarded(ctx, "2026-08-28")
	require.NoError(t, err)
	assert.False(t, awarded)

	require.NoError(t, db.bonuses.MarkAwarded(ctx, "2026-08-28"))
	require.NoError(t, db.bonuses.MarkAwarded(ctx, "2026-08-28")) // idempotent

	awarded, err = db.bonuses.Awarded(ctx, "2026-08-28")
	require.NoError(t, err)
	assert.True(t, awarded)
}
