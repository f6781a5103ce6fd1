// Package txs buffers submitted transactions until the sequencer takes them for a batch.
package txs

import (
	"sync"

	"go.uber.org/zap"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/state"
)

const defaultThreshold = 1

// Opt changes Mempool.
type Opt func(*Mempool)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(mp *Mempool) {
		mp.logger = logger
	}
}

// WithThreshold sets the number of pending transactions required for a batch. Values below 1 are ignored.
func WithThreshold(threshold int) Opt {
	return func(mp *Mempool) {
		if threshold > 0 {
			mp.threshold = threshold
		}
	}
}

// Mempool is an arrival ordered buffer of transactions. It is safe for concurrent use.
type Mempool struct {
	logger    *zap.Logger
	validator transactionValidator
	threshold int

	mu      sync.Mutex
	pending []*types.SignedTx
}

// NewMempool creates an empty mempool.
func NewMempool(validator transactionValidator, opts ...Opt) *Mempool {
	mp := &Mempool{
		logger:    zap.NewNop(),
		validator: validator,
		threshold: defaultThreshold,
	}
	for _, opt := range opts {
		opt(mp)
	}
	return mp
}

// Push appends tx. No validation happens here.
func (mp *Mempool) Push(tx *types.SignedTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.pending = append(mp.pending, tx)
	pendingGauge.Set(float64(len(mp.pending)))
}

// Len returns the number of pending transactions.
func (mp *Mempool) Len() int {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return len(mp.pending)
}

// Threshold is the minimal number of pending transactions for a batch.
func (mp *Mempool) Threshold() int {
	return mp.threshold
}

// Ready reports whether enough transactions are pending for a batch.
func (mp *Mempool) Ready() bool {
	return mp.Len() >= mp.threshold
}

// DrainValid empties the mempool and returns, in arrival order, the transactions that
// pass admission. Every transaction is checked against snap with the previously accepted
// transactions of this drain already applied, so accepted transactions can be applied in
// the returned order. This is stricter than checking each transaction against snap alone:
// two transactions of one sender with the same nonce, or together spending more than the
// balance, are not both admitted in one drain. Rejected transactions are dropped.
func (mp *Mempool) DrainValid(snap *state.Snapshot) []*types.SignedTx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	pending := mp.pending
	mp.pending = nil
	pendingGauge.Set(0)

	valid := make([]*types.SignedTx, 0, len(pending))
	projected := snap
	for _, tx := range pending {
		if err := mp.validator.Validate(projected, tx); err != nil {
			rejectedCnt.Inc()
			mp.logger.Info("dropping transaction",
				log.ZShortStringer("tx_id", tx.ID()),
				log.ZShortStringer("sender", tx.Sender),
				zap.Error(err),
			)
			continue
		}
		acceptedCnt.Inc()
		valid = append(valid, tx)
		projected = mp.validator.Apply(projected, tx)
	}
	return valid
}
