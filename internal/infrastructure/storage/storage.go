// Package storage assembles the filesystem side of the explorer: the mount
// table and the recycle bin shared by every window.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// Storage is the mounted filesystem and its recycle bin.
type Storage struct {
	Table   *vfs.MountTable
	Recycle *recycle.Manager
}

// Open loads the mount table named by cfg, mounts it and initialises the
// recycle bin, reconciling its ledger with what is on disk.
func Open(ctx context.Context, cfg config.ExplorerConfig, logger *logging.Logger, metrics *monitoring.Metrics) (*Storage, error) {
	logger = logger.OrNop()

	mounts, err := config.LoadMounts(cfg.MountsFile)
	if err != nil {
		return nil, err
	}
	table, err := mounts.Build(cfg.RecycleRoot)
	if err != nil {
		return nil, fmt.Errorf("mount drives: %w", err)
	}
	for _, m := range table.Mounts() {
		logger.Info("Mounted drive",
			zap.String("path", m.Path),
			zap.String("type", m.Type),
			zap.String("root", m.HostRoot))
	}

	bin := recycle.NewManager(recycle.Options{
		FS:      table,
		Root:    cfg.RecycleRoot,
		Logger:  logger,
		Metrics: metrics,
	})
	if err := bin.Init(ctx); err != nil {
		return nil, fmt.Errorf("initialise recycle bin: %w", err)
	}
	logger.Info("Recycle bin ready", zap.String("root", bin.Root()))

	return &Storage{Table: table, Recycle: bin}, nil
}
