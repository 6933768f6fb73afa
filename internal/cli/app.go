package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/navigation"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// App carries what commands share. Storage is opened on first use unless
// it is set up front.
type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	Storage  *storage.Storage
	Prompter fileops.Prompter

	yes    bool
	mounts string
}

// NewApp creates an App that asks questions in the terminal.
func NewApp(cfg *config.Config, logger *logging.Logger) *App {
	return &App{
		Config:   cfg,
		Logger:   logger,
		Prompter: NewHuhPrompter(),
	}
}

func (a *App) open(cmd *cobra.Command) error {
	if a.Storage != nil {
		return nil
	}
	if a.Config == nil {
		a.Config = config.Default()
	}
	if a.mounts != "" {
		a.Config.Explorer.MountsFile = a.mounts
	}
	st, err := storage.Open(cmd.Context(), a.Config.Explorer, a.Logger, nil)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.Storage = st
	return nil
}

// engine returns an engine for one command. Dialogs go to the terminal,
// or are all accepted under --yes. A non-empty name answers the name
// prompt.
func (a *App) engine(name string) *fileops.Engine {
	p := a.Prompter
	if a.yes || p == nil {
		p = fileops.Answers{Confirmed: a.yes}
	}
	if name != "" {
		p = named{Prompter: p, name: name}
	}
	mru := navigation.DefaultMRUSize
	if a.Config != nil {
		mru = a.Config.Explorer.MRUSize
	}
	return fileops.NewEngine(fileops.Options{
		FS:       a.Storage.Table,
		Recycle:  a.Storage.Recycle,
		History:  navigation.New(mru),
		Prompter: p,
		Logger:   a.Logger,
	})
}

// confirm asks a question outside the engine, honouring --yes. A
// declined question prints "Cancelled".
func (a *App) confirm(cmd *cobra.Command, message string) (bool, error) {
	if a.yes {
		return true, nil
	}
	if a.Prompter == nil {
		return false, nil
	}
	ok, err := a.Prompter.Confirm(cmd.Context(), message)
	if err == nil && !ok {
		note(cmd.OutOrStdout(), "Cancelled")
	}
	return ok, err
}

// named answers the name prompt with a fixed name.
type named struct {
	fileops.Prompter
	name string
}

func (n named) PromptName(context.Context, string, string) (string, bool, error) {
	return n.name, true, nil
}

func (a *App) sniffLimit() int64 {
	if a.Config == nil {
		return fileops.DefaultSniffLimit
	}
	return a.Config.Explorer.SniffLimit
}

func (a *App) rootLabel() string {
	if a.Config == nil || a.Config.Explorer.RootLabel == "" {
		return paths.DefaultRootLabel
	}
	return a.Config.Explorer.RootLabel
}
