// Package prover requests transaction proofs and collects them in batch order.
package prover

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/state"
)

var (
	// ErrProof wraps every failure to obtain a proof for a transaction.
	ErrProof = errors.New("proof failed")
	// ErrChainLength is returned when the snapshot chain does not match the transactions.
	ErrChainLength = errors.New("snapshot chain does not match transactions")
)

// Result is the outcome of the proof request for Tx. Exactly one of Proof and Err is set.
type Result struct {
	Tx    *types.SignedTx
	Proof *types.TxProof
	Err   error
}

// DispatcherOpt changes Dispatcher.
type DispatcherOpt func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) DispatcherOpt {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithConfig sets the parallelism and request timeout.
func WithConfig(cfg Config) DispatcherOpt {
	return func(d *Dispatcher) {
		d.cfg = cfg
	}
}

// Dispatcher fans out one proof request per transaction and gathers the results.
type Dispatcher struct {
	logger *zap.Logger
	cfg    Config
	prover Prover
}

// NewDispatcher creates a dispatcher on top of prover.
func NewDispatcher(prover Prover, opts ...DispatcherOpt) *Dispatcher {
	d := &Dispatcher{
		logger: zap.NewNop(),
		prover: prover,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch requests a proof for every txs[i] against the pair (chain[i], chain[i+1]) and
// waits for all of them. The i-th result always belongs to txs[i], no matter the order in
// which the requests complete. A failed request does not affect the others.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	chain []*state.Snapshot,
	txs []*types.SignedTx,
) ([]Result, error) {
	if len(chain) != len(txs)+1 {
		return nil, fmt.Errorf("%w: %d snapshots for %d transactions", ErrChainLength, len(chain), len(txs))
	}
	results := make([]Result, len(txs))
	var eg errgroup.Group
	eg.SetLimit(d.cfg.parallelism())
	for i, tx := range txs {
		eg.Go(func() error {
			results[i] = d.prove(ctx, tx, chain[i], chain[i+1])
			return nil
		})
	}
	// requests never fail the group, errors are in the results
	_ = eg.Wait()

	failed := 0
	for _, rst := range results {
		if rst.Err != nil {
			failed++
		}
	}
	d.logger.Debug("proofs collected",
		zap.Int("requested", len(txs)),
		zap.Int("failed", failed),
	)
	return results, nil
}

func (d *Dispatcher) prove(ctx context.Context, tx *types.SignedTx, pre, post *state.Snapshot) Result {
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}
	inflight.Inc()
	defer inflight.Dec()

	start := time.Now()
	proof, err := d.prover.Prove(ctx, tx, pre, post)
	if err == nil && proof == nil {
		err = errors.New("prover returned no proof")
	}
	elapsed := time.Since(start)
	if err != nil {
		proofErrLatency.Observe(elapsed.Seconds())
		d.logger.Warn("failed to prove transaction",
			log.ZShortStringer("tx_id", tx.ID()),
			zap.Duration("elapsed", elapsed),
			log.TrimmedError(err),
		)
		return Result{Tx: tx, Err: fmt.Errorf("%w: tx %s: %w", ErrProof, tx.ID().ShortString(), err)}
	}
	proofOkLatency.Observe(elapsed.Seconds())
	return Result{Tx: tx, Proof: proof}
}
