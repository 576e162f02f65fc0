package engine

import (
	"context"
	"fmt"

	"grindstone/internal/storage"
)

// PlaceBet attaches a wager to an incomplete mission instance. The stake is
// only charged if the bet is forfeited; winnings are credited on completion.
func (s *Service) PlaceBet(ctx context.Context, date, id string, amount, multiplier float64) (Instance, error) {
	if amount <= 0 {
		return Instance{}, fmt.Errorf("bet amount must be positive")
	}
	if multiplier <= 0 {
		return Instance{}, fmt.Errorf("bet multiplier must be positive")
	}

	inst, err := s.findInstance(ctx, date, id)
	if err != nil {
		return Instance{}, err
	}
	if inst.Completed {
		return Instance{}, fmt.Errorf("mission %s is already completed", inst.ID)
	}
	if inst.Bet.Placed {
		return Instance{}, fmt.Errorf("mission %s already has a bet", inst.ID)
	}

	inst.Bet = storage.Bet{Placed: true, Amount: amount, Multiplier: multiplier}
	if err := writeInstance(ctx, s.db, inst); err != nil {
		return Instance{}, err
	}
	return inst, nil
}

// DeclineBet withdraws a pending bet without penalty. Resolved or paid-out
// bets cannot be declined.
func (s *Service) DeclineBet(ctx context.Context, date, id string) (Instance, error) {
	inst, err := s.findInstance(ctx, date, id)
	if err != nil {
		return Instance{}, err
	}
	if !inst.Bet.Placed {
		return Instance{}, fmt.Errorf("mission %s has no bet", inst.ID)
	}
	if inst.Bet.Won != nil {
		return Instance{}, fmt.Errorf("bet on mission %s is already resolved", inst.ID)
	}
	if inst.Completed {
		return Instance{}, fmt.Errorf("mission %s is already completed", inst.ID)
	}

	inst.Bet = storage.Bet{}
	if err := writeInstance(ctx, s.db, inst); err != nil {
		return Instance{}, err
	}
	return inst, nil
}

// SettleResult reports one end-of-day sweep.
type SettleResult struct {
	Resolved  int     // bets marked lost
	Forfeited float64 // total stake charged to spent
	Failed    int     // records whose persistence failed (logged, not fatal)
}

// RunDailySweep settles expired bets at most once per day transition.
// The second return reports whether the sweep actually ran.
func (s *Service) RunDailySweep(ctx context.Context) (*SettleResult, bool, error) {
	today := s.Today()
	last, _, err := s.settings.Get(ctx, storage.SettingLastBetSweep)
	if err != nil {
		return nil, false, err
	}
	if last == today {
		return nil, false, nil
	}
	res, err := s.SettleExpiredBets(ctx, today)
	if err != nil {
		return nil, false, err
	}
	if err := s.settings.Set(ctx, storage.SettingLastBetSweep, today); err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// SettleExpiredBets resolves every past-dated, unresolved bet as lost and
// charges the forfeited stakes to the character's spent total. Per-record
// persistence failures are logged and skipped so one bad record cannot stall
// the rest of the batch; re-running is a no-op for already-resolved bets.
func (s *Service) SettleExpiredBets(ctx context.Context, today string) (*SettleResult, error) {
	res := &SettleResult{}
	lost := false

	expired, err := s.missions.ListUnresolvedBetsBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	for i := range expired {
		m := expired[i]
		m.Bet.Won = &lost
		if err := s.missions.Update(ctx, &m); err != nil {
			s.log.Error("settle: mission update failed", "mission", m.ID, "err", err)
			res.Failed++
			continue
		}
		res.Resolved++
		res.Forfeited += m.Bet.Amount
	}

	recurring, err := s.recurring.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recurring {
		rm := recurring[i]
		changed := false
		stake := 0.0
		count := 0
		for date, c := range rm.Completions {
			if date >= today || c.Completed || !c.Bet.Placed || c.Bet.Won != nil {
				continue
			}
			c.Bet.Won = &lost
			rm.Completions[date] = c
			stake += c.Bet.Amount
			count++
			changed = true
		}
		if !changed {
			continue
		}
		if err := s.recurring.Update(ctx, &rm); err != nil {
			s.log.Error("settle: recurring update failed", "mission", rm.ID, "err", err)
			res.Failed += count
			continue
		}
		res.Resolved += count
		res.Forfeited += stake
	}

	if res.Forfeited > 0 {
		c, err := s.character.GetOrCreateMain(ctx)
		if err != nil {
			return nil, err
		}
		c.Spent += res.Forfeited
		if err := s.character.Update(ctx, c); err != nil {
			return nil, fmt.Errorf("settle: record forfeits: %w", err)
		}
	}
	return res, nil
}
