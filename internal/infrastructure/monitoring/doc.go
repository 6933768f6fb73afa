/*
Package monitoring provides Prometheus metrics for the explorer.

# Overview

Each Metrics value owns a private registry. The HTTP server exposes it at
/metrics and the domain packages record into it through nil-safe methods,
so a component built without metrics simply records nothing.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "paste")
	// ... perform operation ...
	timer.Stop(monitoring.StatusOK)
*/
package monitoring
