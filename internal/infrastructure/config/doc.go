// Package config provides 12-factor configuration management for the explorer.
//
// Configuration is loaded from environment variables with sensible defaults.
// The drive layout comes from an optional mount table file.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Explorer: mount table, recycle root, MRU size, sniff limit, root label
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	mounts, err := config.LoadMounts(cfg.Explorer.MountsFile)
//	table, err := mounts.Build(cfg.Explorer.RecycleRoot)
//
// Environment Variables:
//   - PORT, HOST
//   - EXPLORER_MOUNTS, EXPLORER_RECYCLE_ROOT, EXPLORER_MRU_SIZE,
//     EXPLORER_SNIFF_LIMIT, EXPLORER_ROOT_LABEL
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
