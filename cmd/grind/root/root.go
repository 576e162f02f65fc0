package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grindstone/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "grind",
	Short:         "Grindstone — gamified productivity ledger",
	Long:          "Grindstone is a local-first CLI/TUI productivity tracker where completed missions earn currency, streaks multiply rewards, and you can bet on yourself.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newUndoCmd(),
		newListCmd(),
		newStatusCmd(),
		newBetCmd(),
		newSettleCmd(),
		newGoalCmd(),
		newDiaryCmd(),
		newTargetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
