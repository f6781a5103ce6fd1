package txs

import "github.com/trollup/go-trollup/metrics"

const (
	subsystem = "mempool"

	outcomeLabel = "outcome"
)

var (
	pendingGauge = metrics.NewGauge(
		"pending",
		subsystem,
		"number of transactions waiting in the mempool",
		[]string{},
	).WithLabelValues()

	drained = metrics.NewCounter(
		"drained",
		subsystem,
		"number of transactions removed from the mempool by outcome",
		[]string{outcomeLabel},
	)
	acceptedCnt = drained.WithLabelValues("accepted")
	rejectedCnt = drained.WithLabelValues("rejected")
)
