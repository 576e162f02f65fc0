package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"grindstone/internal/ui"
)

func newTargetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target [amount]",
		Short: "Show or set the daily earnings goal that keeps the streak alive",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one amount")
			}
			if len(args) == 1 {
				if _, err := strconv.ParseFloat(args[0], 64); err != nil {
					return errors.New("amount must be a number")
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

			if len(args) == 1 {
				goal, _ := strconv.ParseFloat(args[0], 64)
				if err := svc.SetDailyGoal(ctx, goal); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s daily goal set to %s\n", ui.Good.Render(ui.IconFlame+" Target:"), ui.Money(goal))
				return nil
			}

			goal, err := svc.DailyGoal(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Daily goal", ui.Money(goal)))
			return nil
		},
	}

	return cmd
}
