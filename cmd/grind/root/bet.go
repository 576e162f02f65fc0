package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"grindstone/internal/advisor"
	"grindstone/internal/ui"
)

func newBetCmd() *cobra.Command {
	var date string
	var multiplier float64
	var decline bool

	cmd := &cobra.Command{
		Use:   "bet <id> [stake]",
		Short: "Wager earnings on completing a mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("id and optional stake are required")
			}
			if len(args) == 2 {
				if _, err := strconv.ParseFloat(args[1], 64); err != nil {
					return errors.New("stake must be a number")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if date == "" {
				date = svc.Today()
			}

			if decline {
				inst, err := svc.DeclineBet(ctx, date, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconDice+" Bet withdrawn:"), inst.Description)
				return nil
			}
			if len(args) != 2 {
				return errors.New("stake is required")
			}
			stake, _ := strconv.ParseFloat(args[1], 64)

			mult := multiplier
			if !cmd.Flags().Changed("multiplier") {
				inst, err := svc.MissionsOn(ctx, date)
				if err != nil {
					return err
				}
				for _, m := range inst {
					if m.ID == args[0] || m.MasterID == args[0] {
						odds, rationale, err := advisor.Static{}.BettingOdds(ctx, m)
						if err != nil {
							return err
						}
						mult = odds
						fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Offered x%.1f (%s).", odds, rationale)))
						break
					}
				}
			}
			if mult <= 0 {
				return errors.New("no odds available, pass --multiplier")
			}

			placed, err := svc.PlaceBet(ctx, date, args[0], stake, mult)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n",
				ui.Gold.Render(ui.IconDice+" Bet placed:"), ui.Money(stake), placed.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s if done by end of %s\n",
				ui.Key.Render("Payout:"), ui.Money(stake+stake*mult), placed.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Mission date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64VarP(&multiplier, "multiplier", "m", 0, "Payout multiplier (default from offered odds)")
	cmd.Flags().BoolVar(&decline, "decline", false, "Withdraw a pending bet instead of placing one")

	return cmd
}

func newSettleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle expired bets (runs once per day)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, ran, err := svc.RunDailySweep(ctx)
			if err != nil {
				return err
			}
			if !ran {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already settled today."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d bet(s) lost, %s forfeited\n",
				ui.Warn.Render(ui.IconWarn+" Settled:"), res.Resolved, ui.Money(res.Forfeited))
			if res.Failed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(fmt.Sprintf("%d record(s) could not be updated.", res.Failed)))
			}
			return nil
		},
	}

	return cmd
}
