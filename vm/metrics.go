package vm

import (
	"github.com/trollup/go-trollup/metrics"
)

const (
	subsystem = "vm"

	reasonLabel = "reason"
)

var (
	admission = metrics.NewCounter(
		"admission",
		subsystem,
		"number of transactions checked by the admission filter",
		[]string{reasonLabel},
	)
	admittedCnt          = admission.WithLabelValues("ok")
	badSignatureCnt      = admission.WithLabelValues("bad_signature")
	selfTransferCnt      = admission.WithLabelValues("self_transfer")
	insufficientFundsCnt = admission.WithLabelValues("insufficient_balance")
	nonceTooLowCnt       = admission.WithLabelValues("nonce_too_low")

	appliedCnt = metrics.NewCounter(
		"applied",
		subsystem,
		"number of transactions applied to the state",
		[]string{},
	).WithLabelValues()
)
