package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// NewListCommand creates the ls command
func NewListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [DIR]",
		Short: "List a folder",
		Long:  `List a folder, folders first. Without DIR the drives are listed.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := paths.Root
			if len(args) == 1 {
				dir = args[0]
			}
			entries, err := app.engine("").List(cmd.Context(), dir, app.sniffLimit())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			note(out, "%s", paths.DisplayName(dir, app.rootLabel()))
			printEntries(cmd, entries, true)
			return nil
		},
	}
}

// NewFindCommand creates the find command
func NewFindCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find DIR PATTERN",
		Short: "Search a folder tree with a glob",
		Long: `Search DIR and everything below it. PATTERN is a glob supporting "**";
a pattern without "/" also matches bare names at any depth.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := app.engine("").Search(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printEntries(cmd, found, false)
			if len(found) >= fileops.MaxSearchResults {
				note(cmd.OutOrStdout(), "showing the first %d matches", fileops.MaxSearchResults)
			}
			return nil
		},
	}
}

// NewDrivesCommand creates the drives command
func NewDrivesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List mounted drives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drives, err := app.Storage.Table.Drives(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			_, _ = fmt.Fprintln(tw, "DRIVE\tTYPE\tUSED\tROOT")
			for _, d := range drives {
				root := "-"
				for _, m := range app.Storage.Table.Mounts() {
					if m.Path == d.Path && m.HostRoot != "" {
						root = m.HostRoot
					}
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Path, d.Type, size(d.UsedBytes, false), root)
			}
			return tw.Flush()
		},
	}
}

func printEntries(cmd *cobra.Command, entries []fileops.Entry, short bool) {
	tw := newTable(cmd.OutOrStdout())
	_, _ = fmt.Fprintln(tw, "NAME\tTYPE\tSIZE\tMODIFIED")
	for _, e := range entries {
		name := e.Path
		if short {
			name = e.Name
		}
		if e.IsDir {
			name = dirStyle.Render(name + "/")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, e.MimeType, size(e.Size, e.IsDir), when(e.Modified))
	}
	_ = tw.Flush()
}
