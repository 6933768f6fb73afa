package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// NewRemoveCommand creates the rm command
func NewRemoveCommand(app *App) *cobra.Command {
	var permanent bool

	cmd := &cobra.Command{
		Use:   "rm PATH...",
		Short: "Move items to the recycle bin",
		Long: `Move items to the recycle bin after confirmation. Items already in the
recycle bin, or any item with --permanent, are deleted for good.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := app.engine("").DeleteItems(cmd.Context(), args, permanent)
			if err != nil {
				return err
			}
			if !deleted {
				note(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			success(cmd.OutOrStdout(), "Deleted %d item(s)", len(paths.Outermost(args)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&permanent, "permanent", false, "Delete without using the recycle bin")
	return cmd
}

// NewRenameCommand creates the rename command
func NewRenameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PATH [NAME]",
		Short: "Rename an item",
		Long:  `Rename an item. Without NAME the new name is asked for.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 2 {
				name = args[1]
			}
			newPath, err := app.engine(name).RenameItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if newPath == "" {
				note(cmd.OutOrStdout(), "Unchanged")
				return nil
			}
			success(cmd.OutOrStdout(), "Renamed %s -> %s", args[0], newPath)
			return nil
		},
	}
}

// NewMkdirCommand creates the mkdir command
func NewMkdirCommand(app *App) *cobra.Command {
	return newCreateCommand(app, "mkdir", "Create a folder", (*fileops.Engine).CreateFolderIn)
}

// NewTouchCommand creates the touch command
func NewTouchCommand(app *App) *cobra.Command {
	return newCreateCommand(app, "touch", "Create an empty text file", (*fileops.Engine).CreateTextFileIn)
}

func newCreateCommand(app *App, use, short string, create func(*fileops.Engine, context.Context, string) (string, error)) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   use + " DIR",
		Short: short,
		Long:  short + ` in DIR. Without --name the name is asked for, suggesting one that is free.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := create(app.engine(name), cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if created == "" {
				note(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			success(cmd.OutOrStdout(), "Created %s", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new item")
	return cmd
}
