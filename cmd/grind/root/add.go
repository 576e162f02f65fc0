package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"grindstone/internal/advisor"
	"grindstone/internal/engine"
	"grindstone/internal/ui"
)

func newAddCmd() *cobra.Command {
	var date string
	var difficulty string
	var category string
	var estimated int
	var align int
	var at string
	var repeat string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a mission (one-off or recurring)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("description is required")
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

			diff, ok := engine.ParseDifficulty(difficulty)
			if !ok {
				return fmt.Errorf("unknown difficulty %q (easy|medium|hard|savage)", difficulty)
			}

			in := engine.AddMissionInput{
				Date:          date,
				Description:   args[0],
				Difficulty:    diff,
				Category:      category,
				EstimatedTime: estimated,
			}
			if in.Date == "" {
				in.Date = svc.Today()
			}
			if cmd.Flags().Changed("align") {
				in.GoalAlignment = &align
			}
			if at != "" {
				in.ScheduledAt = &at
			}
			if repeat != "" {
				rule, ok := engine.ParseRecurrenceRule(repeat)
				if !ok {
					return fmt.Errorf("unknown recurrence %q (daily|weekly|weekdays|weekends)", repeat)
				}
				in.Recurrence = rule
			}

			inst, err := svc.AddMission(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.MissionIcon(inst.Recurring()),
				inst.Description)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", inst.ID))
			preview := inst
			est := inst.EstimatedTime
			preview.ActualTime = &est
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %dm, potential %s\n",
				ui.Key.Render("Terms:"), ui.DifficultyText(string(inst.Difficulty)), inst.EstimatedTime, ui.Money(engine.Reward(preview)))
			if inst.AlignedGoalID != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Auto-aligned to active objective."))
			}

			story, err := advisor.Static{}.MissionStory(ctx, inst)
			if err == nil && story != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Dim.Render(ui.IconScroll+" "+story))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Mission date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "Difficulty (easy|medium|hard|savage)")
	cmd.Flags().StringVarP(&category, "category", "c", "General", "Category label")
	cmd.Flags().IntVarP(&estimated, "time", "t", 30, "Estimated time in minutes")
	cmd.Flags().IntVar(&align, "align", 0, "Goal alignment score (1-5)")
	cmd.Flags().StringVar(&at, "at", "", "Scheduled time of day (e.g. 14:30)")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence (daily|weekly|weekdays|weekends)")

	return cmd
}
