package engine

import (
	"context"
	"database/sql"
	"fmt"

	"grindstone/internal/storage"
)

type CompletionResult struct {
	Mission    Instance
	Reward     float64 // unmultiplied reward of this completion
	BetWon     bool
	BetPayout  float64 // stake + winnings credited to bonuses
	GrindBonus float64 // all-missions-complete bonus, if awarded now
}

// ConfirmCompletion marks a mission instance complete with its actual time.
// A pending bet on the instance pays out stake plus stake*multiplier into the
// character's bonuses and is resolved won. If this completion finishes every
// mission of the date, the daily grind bonus is awarded once for that date.
func (s *Service) ConfirmCompletion(ctx context.Context, date, id string, actualTime int) (*CompletionResult, error) {
	if actualTime < 0 {
		return nil, fmt.Errorf("actual time must not be negative")
	}

	inst, err := s.findInstance(ctx, date, id)
	if err != nil {
		return nil, err
	}
	if inst.Completed {
		return nil, fmt.Errorf("mission %s is already completed", inst.ID)
	}
	date = inst.Date

	payout := 0.0
	wonBet := false
	if inst.Bet.Placed && inst.Bet.Won == nil {
		winnings := inst.Bet.Amount * inst.Bet.Multiplier
		payout = inst.Bet.Amount + winnings
		wonBet = true
	}

	c, err := s.character.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}

	inst.Completed = true
	inst.ActualTime = &actualTime
	if wonBet {
		won := true
		inst.Bet.Won = &won
	}

	// Mission state and bet payout land together or not at all.
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := writeInstance(ctx, tx, inst); err != nil {
			return err
		}
		if payout > 0 {
			c.Bonuses += payout
			return storage.NewCharacterRepo(tx).Update(ctx, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &CompletionResult{
		Mission:   inst,
		Reward:    Reward(inst),
		BetWon:    wonBet,
		BetPayout: payout,
	}

	bonus, err := s.maybeAwardGrindBonus(ctx, date)
	if err != nil {
		// The completion itself succeeded; report the bonus failure only.
		s.log.Warn("daily grind bonus check failed", "date", date, "err", err)
		return res, nil
	}
	res.GrindBonus = bonus
	return res, nil
}

// Uncomplete reverts a completion (undo an accidental confirm).
func (s *Service) Uncomplete(ctx context.Context, date, id string) error {
	inst, err := s.findInstance(ctx, date, id)
	if err != nil {
		return err
	}
	if !inst.Completed {
		return fmt.Errorf("mission %s is not completed", inst.ID)
	}
	inst.Completed = false
	inst.ActualTime = nil
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return writeInstance(ctx, tx, inst)
	})
}

// writeInstance persists an instance back to its owning record.
func writeInstance(ctx context.Context, tx storage.DBTX, inst Instance) error {
	if !inst.Recurring() {
		repo := storage.NewMissionRepo(tx)
		m, err := repo.Get(ctx, inst.ID)
		if err != nil {
			return err
		}
		if m == nil {
			return NotFoundError{Kind: "mission", ID: inst.ID}
		}
		m.Completed = inst.Completed
		m.ActualTime = inst.ActualTime
		m.Bet = inst.Bet
		m.ScheduledAt = inst.ScheduledAt
		return repo.Update(ctx, m)
	}

	repo := storage.NewRecurringRepo(tx)
	return repo.SetCompletion(ctx, inst.MasterID, inst.Date, storage.Completion{
		Completed:   inst.Completed,
		ActualTime:  inst.ActualTime,
		ScheduledAt: inst.ScheduledAt,
		Bet:         inst.Bet,
	})
}

// maybeAwardGrindBonus pays the daily grind bonus the first time every mission
// of a date is complete. Returns the amount awarded now (0 if none).
func (s *Service) maybeAwardGrindBonus(ctx context.Context, date string) (float64, error) {
	if s.balance.DailyGrindBonus <= 0 {
		return 0, nil
	}
	awarded, err := s.grindBonuses.Awarded(ctx, date)
	if err != nil {
		return 0, err
	}
	if awarded {
		return 0, nil
	}

	missions, err := s.MissionsOn(ctx, date)
	if err != nil {
		return 0, err
	}
	if len(missions) == 0 {
		return 0, nil
	}
	for _, m := range missions {
		if !m.Completed {
			return 0, nil
		}
	}

	c, err := s.character.GetOrCreateMain(ctx)
	if err != nil {
		return 0, err
	}
	c.Bonuses += s.balance.DailyGrindBonus
	if err := s.character.Update(ctx, c); err != nil {
		return 0, err
	}
	if err := s.grindBonuses.MarkAwarded(ctx, date); err != nil {
		return 0, err
	}
	return s.balance.DailyGrindBonus, nil
}
