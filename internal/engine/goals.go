package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"grindstone/internal/storage"
)

type AddGoalInput struct {
	Description string
	TargetDate  string
	Label       string
}

func (s *Service) AddGoal(ctx context.Context, in AddGoalInput) (*storage.Goal, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, errors.New("description is required")
	}
	if in.TargetDate != "" {
		if _, err := ParseDate(in.TargetDate); err != nil {
			return nil, fmt.Errorf("invalid target date %q: %w", in.TargetDate, err)
		}
	}

	g := &storage.Goal{
		ID:          uuid.NewString(),
		Description: desc,
		TargetDate:  in.TargetDate,
	}
	if label := strings.TrimSpace(in.Label); label != "" {
		g.Label = &label
	}
	if err := s.goals.Insert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// CompleteGoal marks a goal conquered and credits the completion reward.
// Completed goals drop out of objective scoring from the next stats pass.
func (s *Service) CompleteGoal(ctx context.Context, id, proof string) (*storage.Goal, error) {
	g, err := s.goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, NotFoundError{Kind: "goal", ID: id}
	}
	if g.Completed {
		return nil, fmt.Errorf("goal %s is already completed", id)
	}

	date := s.Today()
	g.Completed = true
	g.CompletionDate = &date
	if p := strings.TrimSpace(proof); p != "" {
		g.CompletionProof = &p
	}

	c, err := s.character.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	c.Bonuses += s.balance.GoalCompletionReward

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewGoalRepo(tx).Update(ctx, g); err != nil {
			return err
		}
		return storage.NewCharacterRepo(tx).Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ChangeGoal rewrites an active goal's description for a fee. Overspending is
// allowed; the balance may go negative.
func (s *Service) ChangeGoal(ctx context.Context, id, newDescription string) (*storage.Goal, error) {
	desc := strings.TrimSpace(newDescription)
	if desc == "" {
		return nil, errors.New("description is required")
	}

	g, err := s.goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, NotFoundError{Kind: "goal", ID: id}
	}
	if g.Completed {
		return nil, fmt.Errorf("goal %s is already completed", id)
	}
	g.Description = desc

	c, err := s.character.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	c.Spent += s.balance.GoalChangeCost

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewGoalRepo(tx).Update(ctx, g); err != nil {
			return err
		}
		return storage.NewCharacterRepo(tx).Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) ActiveGoals(ctx context.Context) ([]storage.Goal, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var active []storage.Goal
	for _, g := range goals {
		if !g.Completed {
			active = append(active, g)
		}
	}
	return active, nil
}
