package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"grindstone/internal/engine"
	"grindstone/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show earnings, streak and rank",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			dailyGoal, err := svc.DailyGoal(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Character Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", ui.Money(stats.CurrentBalance)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Lifetime earnings", ui.Money(stats.TotalEarnings)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d day(s) %s\n",
				ui.Key.Render(ui.IconFlame+" Streak:"), stats.Streak,
				ui.Muted.Render(fmt.Sprintf("(earnings x%.3f, goal %.2f/day)", stats.StreakMultiplier, dailyGoal)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			rank, next := engine.RankForGP(stats.TotalGP)
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Rank"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Gold.Render(rank.Name), ui.Muted.Render(fmt.Sprintf("(%.0f GP)", stats.TotalGP)))
			if next != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "- next: %s at %.0f GP %s\n",
					next.Name, next.GPThreshold, ui.Muted.Render(fmt.Sprintf("(%.0f to go)", next.GPThreshold-stats.TotalGP)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+ui.Gold.Render("top of the ladder"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			if len(stats.CategoryScores) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📊 Categories"))
				for _, cs := range stats.CategoryScores {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s %s\n",
						cs.Category, ui.Money(cs.Earnings), ui.Muted.Render(fmt.Sprintf("(%d done)", cs.TasksCompleted)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			if len(stats.ObjectiveScores) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconMission+" Objectives"))
				for _, os := range stats.ObjectiveScores {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s %s\n",
						os.GoalLabel, ui.Money(os.Earnings), ui.Muted.Render(fmt.Sprintf("(%d done)", os.TasksCompleted)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			recent := stats.DailyScores
			if len(recent) > 7 {
				recent = recent[len(recent)-7:]
			}
			if len(recent) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("🗓️ Recent days"))
				for _, ds := range recent {
					grade := ""
					if ds.Grade != "" {
						grade = " " + ui.Gold.Render("["+ds.Grade+"]")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s %s%s\n",
						ds.Date, ui.Money(ds.Earnings), ui.Muted.Render(fmt.Sprintf("(%d done)", ds.TasksCompleted)), grade)
				}
			}

			return nil
		},
	}

	return cmd
}
