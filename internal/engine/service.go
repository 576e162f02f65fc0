package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"grindstone/internal/config"
	"grindstone/internal/storage"
)

type Service struct {
	db      *sql.DB
	balance config.Balance
	log     *slog.Logger
	now     func() time.Time

	missions     *storage.MissionRepo
	recurring    *storage.RecurringRepo
	goals        *storage.GoalRepo
	diary        *storage.DiaryRepo
	character    *storage.CharacterRepo
	settings     *storage.SettingsRepo
	grindBonuses *storage.GrindBonusRepo
}

type Option func(*Service)

// WithClock fixes the service's notion of now (tests, replays).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(db *sql.DB, balance config.Balance, opts ...Option) *Service {
	s := &Service{
		db:           db,
		balance:      balance,
		log:          slog.Default(),
		now:          time.Now,
		missions:     storage.NewMissionRepo(db),
		recurring:    storage.NewRecurringRepo(db),
		goals:        storage.NewGoalRepo(db),
		diary:        storage.NewDiaryRepo(db),
		character:    storage.NewCharacterRepo(db),
		settings:     storage.NewSettingsRepo(db),
		grindBonuses: storage.NewGrindBonusRepo(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) MissionRepo() *storage.MissionRepo     { return s.missions }
func (s *Service) RecurringRepo() *storage.RecurringRepo { return s.recurring }
func (s *Service) GoalRepo() *storage.GoalRepo           { return s.goals }
func (s *Service) DiaryRepo() *storage.DiaryRepo         { return s.diary }
func (s *Service) CharacterRepo() *storage.CharacterRepo { return s.character }

// Today returns the current local calendar day key.
func (s *Service) Today() string {
	return FormatDate(s.now())
}

// Snapshot assembles the full in-memory state the scoring engine derives from.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	missions, err := s.missions.ListAll(ctx)
	if err != nil {
		return snap, err
	}
	snap.Missions = map[string][]storage.Mission{}
	for _, m := range missions {
		snap.Missions[m.Date] = append(snap.Missions[m.Date], m)
	}

	if snap.Recurring, err = s.recurring.ListAll(ctx); err != nil {
		return snap, err
	}
	if snap.Diary, err = s.diary.ListAll(ctx); err != nil {
		return snap, err
	}
	if snap.Goals, err = s.goals.ListAll(ctx); err != nil {
		return snap, err
	}
	if snap.DailyGoal, err = s.settings.GetFloat(ctx, storage.SettingDailyGoal, s.balance.DefaultDailyGoal); err != nil {
		return snap, err
	}

	c, err := s.character.GetOrCreateMain(ctx)
	if err != nil {
		return snap, err
	}
	snap.Character = *c
	return snap, nil
}

// Stats recomputes the derived statistics from a fresh snapshot.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	s.flagUnknownDifficulties(snap)
	return ComputeStats(snap, s.Today()), nil
}

// Unknown difficulties score a zero base reward; surface them instead of failing.
func (s *Service) flagUnknownDifficulties(snap Snapshot) {
	for _, inst := range CompletedInstances(snap) {
		if !inst.Difficulty.IsValid() {
			s.log.Warn("mission has unknown difficulty, base reward is 0",
				"mission", inst.ID, "difficulty", string(inst.Difficulty))
		}
	}
}

// DailyGoal returns the configured goal threshold for streak qualification.
func (s *Service) DailyGoal(ctx context.Context) (float64, error) {
	return s.settings.GetFloat(ctx, storage.SettingDailyGoal, s.balance.DefaultDailyGoal)
}

func (s *Service) SetDailyGoal(ctx context.Context, goal float64) error {
	if goal < 0 {
		return fmt.Errorf("daily goal must not be negative")
	}
	return s.settings.SetFloat(ctx, storage.SettingDailyGoal, goal)
}

// MissionsOn materializes the mission set for one date.
func (s *Service) MissionsOn(ctx context.Context, date string) ([]Instance, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return InstancesOn(snap, date), nil
}

// findInstance resolves a mission id on a date to its materialized instance.
// The id may be a one-off mission id, a recurring master id, or a
// "<master>_<date>" instance id.
func (s *Service) findInstance(ctx context.Context, date, id string) (Instance, error) {
	if m, err := s.missions.Get(ctx, id); err != nil {
		return Instance{}, err
	} else if m != nil {
		return fromMission(*m), nil
	}

	masterID := id
	if i := strings.LastIndex(id, "_"); i > 0 {
		if _, err := ParseDate(id[i+1:]); err == nil {
			masterID = id[:i]
			date = id[i+1:]
		}
	}
	rm, err := s.recurring.Get(ctx, masterID)
	if err != nil {
		return Instance{}, err
	}
	if rm == nil {
		return Instance{}, NotFoundError{Kind: "mission", ID: id}
	}
	if date == "" {
		return Instance{}, fmt.Errorf("recurring mission %s needs a date", masterID)
	}
	if !OccursOn(*rm, date) {
		if _, ok := rm.Completions[date]; !ok {
			return Instance{}, fmt.Errorf("mission %s does not occur on %s", masterID, date)
		}
	}
	return fromRecurring(*rm, date), nil
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
