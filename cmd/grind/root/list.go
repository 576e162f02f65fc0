package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"grindstone/internal/engine"
	"grindstone/internal/ui"
)

func newListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's missions",
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
			missions, err := svc.MissionsOn(ctx, date)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMission, "Missions for "+date))
			if len(missions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for _, m := range missions {
				mark := ui.Muted.Render("[ ]")
				earned := ""
				if m.Completed {
					mark = ui.Good.Render("[x]")
					earned = " " + ui.Money(engine.Reward(m))
				}
				sched := ""
				if m.ScheduledAt != nil {
					sched = " " + ui.Muted.Render("@"+*m.ScheduledAt)
				}
				bet := ""
				if m.Bet.Placed {
					switch {
					case m.Bet.Won == nil:
						bet = " " + ui.Warn.Render(fmt.Sprintf("%s %.2f x%.1f", ui.IconDice, m.Bet.Amount, m.Bet.Multiplier))
					case *m.Bet.Won:
						bet = " " + ui.Gold.Render(ui.IconDice+" won")
					default:
						bet = " " + ui.Bad.Render(ui.IconDice+" lost")
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s, %s, %dm)%s%s%s\n",
					mark, ui.MissionIcon(m.Recurring()), m.Description, m.ID,
					ui.DifficultyText(string(m.Difficulty)), m.EstimatedTime, sched, bet, earned)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to list (YYYY-MM-DD, default today)")

	return cmd
}
