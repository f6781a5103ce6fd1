package prover

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trollup/go-trollup/metrics"
)

const (
	subsystem = "prover"

	outcomeLabel = "outcome"
)

var (
	proofLatency = metrics.NewHistogramWithBuckets(
		"proof_duration_seconds",
		subsystem,
		"time to obtain a transaction proof",
		[]string{outcomeLabel},
		prometheus.ExponentialBuckets(0.01, 2, 16),
	)
	proofOkLatency  = proofLatency.WithLabelValues("ok")
	proofErrLatency = proofLatency.WithLabelValues("error")

	inflight = metrics.NewGauge(
		"inflight",
		subsystem,
		"number of proof requests in progress",
		[]string{},
	).WithLabelValues()
)
