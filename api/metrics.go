package api

import "github.com/trollup/go-trollup/metrics"

const subsystem = "api"

var (
	intake = metrics.NewCounter(
		"intake",
		subsystem,
		"number of transactions received over http by outcome",
		[]string{"outcome"},
	)
	queuedCnt      = intake.WithLabelValues("queued")
	droppedCnt     = intake.WithLabelValues("dropped")
	rateLimitedCnt = intake.WithLabelValues("rate_limited")
)
