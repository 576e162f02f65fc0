package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"grindstone/internal/ui"
)

func newDiaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Grade and journal your days",
	}
	cmd.AddCommand(
		newDiaryGradeCmd(),
		newDiaryReflectCmd(),
		newDiaryDebriefCmd(),
		newDiaryShowCmd(),
	)
	return cmd
}

func newDiaryGradeCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "grade <grade>",
		Short: "Grade a day (A+ through F)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("grade is required")
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
			if err := svc.SetGrade(ctx, date, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s graded %s\n", ui.Good.Render(ui.IconBook+" Noted:"), date, ui.Gold.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to grade (YYYY-MM-DD, default today)")

	return cmd
}

func newDiaryReflectCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reflect <text>",
		Short: "Record a morning reflection",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("text is required")
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
			if err := svc.SetReflection(ctx, date, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reflection saved for %s\n", ui.Good.Render(ui.IconBook+" Noted:"), date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")

	return cmd
}

func newDiaryDebriefCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "debrief <text>",
		Short: "Record an evening debrief",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("text is required")
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
			if err := svc.SetDebrief(ctx, date, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s debrief saved for %s\n", ui.Good.Render(ui.IconBook+" Noted:"), date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")

	return cmd
}

func newDiaryShowCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's diary entry",
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
			entry, err := svc.DiaryRepo().Get(ctx, date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Diary "+date))
			if entry == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no entry)"))
				return nil
			}
			if entry.Grade != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Grade", ui.Gold.Render(*entry.Grade)))
			}
			if entry.Reflection != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Reflection", *entry.Reflection))
			}
			if entry.Debrief != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Debrief", *entry.Debrief))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to show (YYYY-MM-DD, default today)")

	return cmd
}
