package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
)

// NewRootCommand creates the root command
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "explorer",
		Short: "Manage files across the explorer's drives",
		Long: `A command line file manager over the explorer mount table.

Deletions go to the recycle bin unless --permanent is given. Names that
already exist are never overwritten: moved items get a " (N)" suffix and
copies are named "Copy of X".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.yes, "yes", "y", false, "Answer yes to every confirmation")
	rootCmd.PersistentFlags().StringVar(&app.mounts, "mounts", "", "Mount table file (.yaml or .toml), overrides EXPLORER_MOUNTS")

	// Add subcommands
	rootCmd.AddCommand(NewListCommand(app))
	rootCmd.AddCommand(NewFindCommand(app))
	rootCmd.AddCommand(NewDrivesCommand(app))
	rootCmd.AddCommand(NewCopyCommand(app))
	rootCmd.AddCommand(NewMoveCommand(app))
	rootCmd.AddCommand(NewRemoveCommand(app))
	rootCmd.AddCommand(NewRenameCommand(app))
	rootCmd.AddCommand(NewMkdirCommand(app))
	rootCmd.AddCommand(NewTouchCommand(app))
	rootCmd.AddCommand(NewTrashCommand(app))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := "warn"
	if cfg.Logging.Development {
		level = cfg.Logging.Level
	}
	logger, err := logging.FromSettings(level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand(NewApp(cfg, logger))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}
