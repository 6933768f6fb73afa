package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
)

// NewTrashCommand creates the trash command group
func NewTrashCommand(app *App) *cobra.Command {
	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and manage the recycle bin",
	}

	trashCmd.AddCommand(newTrashListCommand(app))
	trashCmd.AddCommand(newTrashRestoreCommand(app))
	trashCmd.AddCommand(newTrashPurgeCommand(app))
	trashCmd.AddCommand(newTrashEmptyCommand(app))

	return trashCmd
}

func newTrashListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recycled items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Storage.Recycle.GetMetadata(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				note(cmd.OutOrStdout(), "The recycle bin is empty")
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tORIGINAL PATH\tDELETED")
			for _, it := range items {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Name, it.OriginalPath, when(it.DeletedAt))
			}
			return tw.Flush()
		},
	}
}

func newTrashRestoreCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID...",
		Short: "Restore recycled items to where they were deleted from",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rids, err := parseRecycleIDs(args)
			if err != nil {
				return err
			}
			for _, rid := range rids {
				restored, err := app.Storage.Recycle.RestoreItem(cmd.Context(), rid)
				if err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Restored %s", restored)
			}
			return nil
		},
	}
}

func newTrashPurgeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge ID...",
		Short: "Permanently delete recycled items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rids, err := parseRecycleIDs(args)
			if err != nil {
				return err
			}
			ok, err := app.confirm(cmd, fmt.Sprintf("Permanently delete %d item(s)?", len(rids)))
			if err != nil || !ok {
				return err
			}
			for _, rid := range rids {
				if err := app.Storage.Recycle.DeletePermanently(cmd.Context(), rid); err != nil {
					return err
				}
			}
			success(cmd.OutOrStdout(), "Deleted %d item(s)", len(rids))
			return nil
		},
	}
}

func newTrashEmptyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the recycle bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.confirm(cmd, "Are you sure you want to permanently delete all items in the Recycle Bin?")
			if err != nil || !ok {
				return err
			}
			failed, err := app.Storage.Recycle.EmptyRecycleBin(cmd.Context())
			if err != nil {
				return err
			}
			if failed > 0 {
				note(cmd.OutOrStdout(), "%d item(s) could not be removed", failed)
				return nil
			}
			success(cmd.OutOrStdout(), "Recycle bin emptied")
			return nil
		},
	}
}

func parseRecycleIDs(args []string) ([]id.RecycleID, error) {
	rids := make([]id.RecycleID, 0, len(args))
	for _, a := range args {
		if !id.IsRecycleID(a) {
			return nil, fmt.Errorf("invalid recycle id %q", a)
		}
		rids = append(rids, id.RecycleID(a))
	}
	return rids, nil
}
