package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"grindstone/internal/storage"
)

type AddMissionInput struct {
	Date          string
	Description   string
	Difficulty    Difficulty
	Category      string
	EstimatedTime int
	GoalAlignment *int
	ScheduledAt   *string
	Recurrence    RecurrenceRule // empty for a one-off mission
}

// AddMission creates a one-off or recurring mission. When the category matches
// an active goal's label the mission is auto-aligned to that goal with the
// maximum alignment score; otherwise the default applies.
func (s *Service) AddMission(ctx context.Context, in AddMissionInput) (Instance, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return Instance{}, errors.New("description is required")
	}
	if _, err := ParseDate(in.Date); err != nil {
		return Instance{}, fmt.Errorf("invalid date %q: %w", in.Date, err)
	}
	if !in.Difficulty.IsValid() {
		return Instance{}, fmt.Errorf("invalid difficulty %q", string(in.Difficulty))
	}
	if in.EstimatedTime <= 0 {
		return Instance{}, errors.New("estimated time must be positive")
	}
	if in.GoalAlignment != nil && (*in.GoalAlignment < 1 || *in.GoalAlignment > 5) {
		return Instance{}, errors.New("goal alignment must be 1-5")
	}
	if in.Recurrence != "" && !in.Recurrence.IsValid() {
		return Instance{}, fmt.Errorf("invalid recurrence %q", string(in.Recurrence))
	}

	alignment, alignedGoalID, justification, err := s.alignToGoal(ctx, in.Category, in.GoalAlignment)
	if err != nil {
		return Instance{}, err
	}

	if in.Recurrence == "" {
		m := &storage.Mission{
			ID:            uuid.NewString(),
			Date:          in.Date,
			Description:   desc,
			Difficulty:    string(in.Difficulty),
			Category:      in.Category,
			EstimatedTime: in.EstimatedTime,
			GoalAlignment: alignment,
			AlignedGoalID: alignedGoalID,
			Justification: justification,
			ScheduledAt:   in.ScheduledAt,
		}
		if err := s.missions.Insert(ctx, m); err != nil {
			return Instance{}, err
		}
		return fromMission(*m), nil
	}

	rm := &storage.RecurringMission{
		ID:            uuid.NewString(),
		Description:   desc,
		Difficulty:    string(in.Difficulty),
		Category:      in.Category,
		Recurrence:    string(in.Recurrence),
		StartDate:     in.Date,
		EstimatedTime: in.EstimatedTime,
		GoalAlignment: alignment,
		AlignedGoalID: alignedGoalID,
		Justification: justification,
		ScheduledAt:   in.ScheduledAt,
		Completions:   map[string]storage.Completion{},
	}
	if err := s.recurring.Insert(ctx, rm); err != nil {
		return Instance{}, err
	}
	return fromRecurring(*rm, in.Date), nil
}

// alignToGoal resolves the stored alignment fields for a new mission.
func (s *Service) alignToGoal(ctx context.Context, category string, requested *int) (*int, *string, *string, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, g := range goals {
		if g.Completed || g.Label == nil {
			continue
		}
		if strings.EqualFold(*g.Label, category) {
			max := 5
			id := g.ID
			just := fmt.Sprintf("Directly assigned to objective: %s.", *g.Label)
			return &max, &id, &just, nil
		}
	}
	if requested != nil {
		just := "Manually categorized."
		return requested, nil, &just, nil
	}
	def := DefaultGoalAlignment
	just := "Manually categorized."
	return &def, nil, &just, nil
}

func (s *Service) DeleteMission(ctx context.Context, id string) error {
	m, err := s.missions.Get(ctx, id)
	if err != nil {
		return err
	}
	if m != nil {
		return s.missions.Delete(ctx, id)
	}
	rm, err := s.recurring.Get(ctx, id)
	if err != nil {
		return err
	}
	if rm == nil {
		return NotFoundError{Kind: "mission", ID: id}
	}
	return s.recurring.Delete(ctx, id)
}
