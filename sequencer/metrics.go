package sequencer

import "github.com/trollup/go-trollup/metrics"

const subsystem = "sequencer"

var (
	phaseGauge = metrics.NewGauge(
		"phase",
		subsystem,
		"current phase of the sequencer loop",
		[]string{},
	).WithLabelValues()

	batchesCnt = metrics.NewCounter(
		"batches",
		subsystem,
		"number of applied batches",
		[]string{},
	).WithLabelValues()

	batchSize = metrics.NewHistogramWithBuckets(
		"batch_size",
		subsystem,
		"number of transactions in an applied batch",
		[]string{},
		[]float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
	).WithLabelValues()

	batchLatency = metrics.NewHistogram(
		"batch_duration_seconds",
		subsystem,
		"time from draining the mempool to the end of submission",
		[]string{},
	).WithLabelValues()

	unprovenGauge = metrics.NewGauge(
		"unproven",
		subsystem,
		"number of applied transactions without a settled proof",
		[]string{},
	).WithLabelValues()

	divergedGauge = metrics.NewGauge(
		"diverged",
		subsystem,
		"1 if the settled state stopped following the applied state",
		[]string{},
	).WithLabelValues()
)
