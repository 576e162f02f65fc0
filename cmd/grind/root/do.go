package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"grindstone/internal/ui"
)

func newDoCmd() *cobra.Command {
	var date string
	var actual int

	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a mission and collect the reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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
			res, err := svc.ConfirmCompletion(ctx, date, args[0], actual)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Done"), res.Mission.Description)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Earned", ui.Money(res.Reward)))
			if res.BetWon {
				fmt.Fprintf(cmd.OutOrStdout(), "%s payout %s\n", ui.Gold.Render(ui.IconDice+" Bet won!"), ui.Money(res.BetPayout))
			}
			if res.GrindBonus > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s all missions cleared, bonus %s\n", ui.Gold.Render(ui.IconTrophy+" Daily grind!"), ui.Money(res.GrindBonus))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Mission date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&actual, "time", "t", 0, "Actual time spent in minutes")

	return cmd
}

func newUndoCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Revert a mission completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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
			if err := svc.Uncomplete(ctx, date, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Reverted."))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Mission date (YYYY-MM-DD, default today)")

	return cmd
}
