package cli

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
)

// NewCopyCommand creates the cp command
func NewCopyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cp SRC... DEST",
		Short: "Copy items into a folder",
		Long:  `Copy items into DEST. Each copy is named "Copy of X", or "Copy (N) of X" when that is taken.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := app.engine("")
			srcs, dest := args[:len(args)-1], args[len(args)-1]
			if err := engine.CopyItems(srcs); err != nil {
				return err
			}
			return paste(cmd, engine, dest, "Copied")
		},
	}
}

// NewMoveCommand creates the mv command
func NewMoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv SRC... DEST",
		Short: "Move items into a folder",
		Long: `Move items into DEST. A name that is taken gets a " (N)" suffix. Moves
between drives copy then delete.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := app.engine("")
			srcs, dest := args[:len(args)-1], args[len(args)-1]
			if err := engine.CutItems(srcs); err != nil {
				return err
			}
			return paste(cmd, engine, dest, "Moved")
		},
	}
}

// paste prints what was applied even when the batch stops early.
func paste(cmd *cobra.Command, engine *fileops.Engine, dest, verb string) error {
	results, err := engine.PasteItems(cmd.Context(), dest)
	out := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.Skipped:
			note(out, "%s is already in %s", r.Source, dest)
		case r.Fallback:
			success(out, "%s %s -> %s (across drives)", verb, r.Source, r.Target)
		default:
			success(out, "%s %s -> %s", verb, r.Source, r.Target)
		}
	}
	return err
}
