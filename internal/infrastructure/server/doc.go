// Package server assembles the explorer HTTP server.
//
// This package orchestrates all components:
//   - Mount table and recycle bin (storage package)
//   - Session manager shared by the HTTP and WebSocket handlers
//   - Middleware stack (recovery, request id, logging, metrics, CORS, rate limiting)
//   - HTTP routes and the per-session event stream
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Initialize logger and metrics
//  3. Mount drives and reconcile the recycle bin ledger
//  4. Setup HTTP routes and middleware
//  5. Start HTTP server
//  6. Graceful shutdown on signal: close sessions, drain requests, sync logs
//
// Example Usage:
//
//	cfg, err := config.Load()
//	srv, err := server.NewServer(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
