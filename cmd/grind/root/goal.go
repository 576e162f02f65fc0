package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"grindstone/internal/engine"
	"grindstone/internal/storage"
	"grindstone/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage long-term objectives",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalListCmd(),
		newGoalDoneCmd(),
		newGoalChangeCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var target string
	var label string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add an objective",
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

			g, err := svc.AddGoal(ctx, engine.AddGoalInput{
				Description: args[0],
				TargetDate:  target,
				Label:       label,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconPlus+" Objective added:"), g.Description)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", g.ID))
			if g.Label != nil && *g.Label != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Missions in category \""+*g.Label+"\" will auto-align to it."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "by", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Category label that auto-aligns missions")

	return cmd
}

func newGoalListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objectives",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var goals []storage.Goal
			if all {
				gs, err := svc.GoalRepo().ListAll(ctx)
				if err != nil {
					return err
				}
				goals = gs
			} else {
				gs, err := svc.ActiveGoals(ctx)
				if err != nil {
					return err
				}
				goals = gs
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMission, "Objectives"))
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for _, g := range goals {
				mark := ui.Warn.Render("[ ]")
				if g.Completed {
					mark = ui.Good.Render("[x]")
				}
				meta := ""
				if g.Label != nil && *g.Label != "" {
					meta += " " + ui.Key.Render("#"+*g.Label)
				}
				if g.TargetDate != "" {
					meta += " " + ui.Muted.Render("by "+g.TargetDate)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)%s\n", mark, g.Description, g.ID, meta)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed objectives")

	return cmd
}

func newGoalDoneCmd() *cobra.Command {
	var proof string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete an objective and collect the reward",
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

			g, err := svc.CompleteGoal(ctx, args[0], proof)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Gold.Render(ui.IconTrophy+" Objective complete:"), g.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&proof, "proof", "", "Evidence of completion")

	return cmd
}

func newGoalChangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change <id> <new description>",
		Short: "Rewrite an objective (costs earnings)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and new description are required")
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

			g, err := svc.ChangeGoal(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Objective rewritten:"), g.Description)
			return nil
		},
	}

	return cmd
}
