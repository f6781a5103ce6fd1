// Package settlement submits transaction proofs to the settlement chain.
package settlement

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/prover"
)

// Status of a single proof after submission.
type Status uint8

const (
	// Submitted means the settlement layer accepted the proof.
	Submitted Status = iota
	// ProofFailed means there was no proof to submit.
	ProofFailed
	// SubmitFailed means the settlement layer did not accept the proof.
	SubmitFailed
)

func (s Status) String() string {
	switch s {
	case Submitted:
		return "submitted"
	case ProofFailed:
		return "proof_failed"
	case SubmitFailed:
		return "submit_failed"
	}
	return "unknown"
}

// Outcome of the i-th proof result.
type Outcome struct {
	TxID   types.Hash32
	Status Status
	Err    error
}

// Report lists the outcomes in batch order.
type Report struct {
	Outcomes []Outcome
}

// Submitted returns the number of proofs accepted by the settlement layer.
func (r *Report) Submitted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == Submitted {
			n++
		}
	}
	return n
}

// ProvenPrefix is the number of leading outcomes that were all submitted.
func (r *Report) ProvenPrefix() int {
	for i, o := range r.Outcomes {
		if o.Status != Submitted {
			return i
		}
	}
	return len(r.Outcomes)
}

// SubmitterOpt changes Submitter.
type SubmitterOpt func(*Submitter)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) SubmitterOpt {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// Submitter hands proofs to the settlement layer one at a time, in batch order.
type Submitter struct {
	logger *zap.Logger
	layer  Layer
}

// NewSubmitter creates a submitter for layer.
func NewSubmitter(layer Layer, opts ...SubmitterOpt) *Submitter {
	s := &Submitter{logger: zap.NewNop(), layer: layer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit walks results in order. Failed proofs are logged and skipped. Each available proof
// is submitted as a block of its own and the call waits for the answer before moving on.
// Submission failures are logged and not retried. If ctx is done the remaining results are
// reported as SubmitFailed.
func (s *Submitter) Submit(ctx context.Context, results []prover.Result) *Report {
	report := &Report{Outcomes: make([]Outcome, len(results))}
	for i, rst := range results {
		outcome := &report.Outcomes[i]
		outcome.TxID = rst.Tx.ID()
		switch {
		case rst.Err != nil:
			outcome.Status = ProofFailed
			outcome.Err = rst.Err
			proofFailedCnt.Inc()
			s.logger.Warn("skipping transaction without proof",
				log.ZShortStringer("tx_id", outcome.TxID),
				zap.Int("index", i),
				log.TrimmedError(rst.Err),
			)
		case ctx.Err() != nil:
			outcome.Status = SubmitFailed
			outcome.Err = ctx.Err()
			submitFailedCnt.Inc()
		default:
			start := time.Now()
			err := s.layer.SubmitBlock(ctx, []*types.TxProof{rst.Proof})
			submitLatency.Observe(time.Since(start).Seconds())
			if err != nil {
				outcome.Status = SubmitFailed
				outcome.Err = err
				submitFailedCnt.Inc()
				s.logger.Error("failed to submit block",
					log.ZShortStringer("tx_id", outcome.TxID),
					zap.Int("index", i),
					log.ZShortStringer("post_root", rst.Proof.PostRoot),
					log.TrimmedError(err),
				)
				continue
			}
			outcome.Status = Submitted
			submittedCnt.Inc()
			s.logger.Debug("block submitted",
				log.ZShortStringer("tx_id", outcome.TxID),
				log.ZShortStringer("post_root", rst.Proof.PostRoot),
			)
		}
	}
	return report
}
