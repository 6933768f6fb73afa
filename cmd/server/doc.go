// Package main is the entry point for the explorer HTTP server.
//
// The server exposes explorer windows (sessions) over a JSON API with a
// WebSocket event stream per window, on top of a mount table of in-memory
// and host-backed drives.
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	EXPLORER_MOUNTS=/etc/explorer/mounts.yaml ./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
