package settlement

import "github.com/trollup/go-trollup/metrics"

const (
	subsystem = "settlement"

	outcomeLabel = "outcome"
)

var (
	submissions = metrics.NewCounter(
		"submissions",
		subsystem,
		"number of proofs handled by the submitter by outcome",
		[]string{outcomeLabel},
	)
	submittedCnt    = submissions.WithLabelValues("submitted")
	proofFailedCnt  = submissions.WithLabelValues("proof_failed")
	submitFailedCnt = submissions.WithLabelValues("submit_failed")

	submitLatency = metrics.NewHistogram(
		"submit_duration_seconds",
		subsystem,
		"time to submit a block to the settlement layer",
		[]string{},
	).WithLabelValues()
)
