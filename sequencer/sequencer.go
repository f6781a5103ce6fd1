// Package sequencer runs the loop that turns incoming transactions into settled state roots.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/prover"
	"github.com/trollup/go-trollup/settlement"
	"github.com/trollup/go-trollup/state"
	"github.com/trollup/go-trollup/txs"
	"github.com/trollup/go-trollup/vm"
)

// Opt changes Sequencer.
type Opt func(*Sequencer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithClock sets the clock used to time batches.
func WithClock(clock clockwork.Clock) Opt {
	return func(s *Sequencer) {
		s.clock = clock
	}
}

// WithStore persists every applied batch and the settlement progress.
func WithStore(store stateStore) Opt {
	return func(s *Sequencer) {
		s.store = store
	}
}

// WithMeta restores the progress recorded by a previous run.
func WithMeta(meta *state.Meta) Opt {
	return func(s *Sequencer) {
		s.meta = meta
	}
}

// Sequencer owns the authoritative state. It drains the mempool into batches, applies them,
// and gets every transaction of a batch proven and settled before it starts the next one.
type Sequencer struct {
	logger *zap.Logger
	clock  clockwork.Clock
	once   sync.Once
	eg     errgroup.Group
	stop   func()

	intake     <-chan *types.SignedTx
	mempool    *txs.Mempool
	vm         *vm.VM
	dispatcher *prover.Dispatcher
	submitter  *settlement.Submitter
	roots      rootReader
	store      stateStore
	meta       *state.Meta
	// dirty holds the accounts changed since the last successful commit. Only the loop uses it.
	dirty map[types.Address]struct{}

	mu      sync.RWMutex
	current *state.Snapshot
	status  Status
}

// New creates a sequencer that starts from genesis and reads transactions from intake.
// Use WithMeta when genesis was loaded from storage.
func New(
	intake <-chan *types.SignedTx,
	mempool *txs.Mempool,
	machine *vm.VM,
	dispatcher *prover.Dispatcher,
	submitter *settlement.Submitter,
	roots rootReader,
	genesis *state.Snapshot,
	opts ...Opt,
) *Sequencer {
	s := &Sequencer{
		logger:     zap.NewNop(),
		clock:      clockwork.NewRealClock(),
		intake:     intake,
		mempool:    mempool,
		vm:         machine,
		dispatcher: dispatcher,
		submitter:  submitter,
		roots:      roots,
		current:    genesis,
		dirty:      make(map[types.Address]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	root := genesis.Root()
	s.status = Status{AppliedRoot: root, ProvenRoot: root}
	if s.meta != nil {
		s.status.ProvenRoot = s.meta.ProvenRoot
		s.status.Applied = s.meta.Applied
		s.status.Proven = s.meta.Proven
		s.status.Batches = s.meta.Batches
		s.status.Diverged = s.meta.Diverged
	}
	s.updateGauges()
	return s
}

// Start runs the loop in the background.
func (s *Sequencer) Start(ctx context.Context) {
	s.once.Do(func() {
		ctx, s.stop = context.WithCancel(ctx)
		s.eg.Go(func() error {
			return s.run(ctx)
		})
	})
}

// Stop cancels the loop and waits for it to exit.
func (s *Sequencer) Stop() {
	if s.stop == nil {
		return
	}
	s.stop()
	if err := s.Wait(); err != nil {
		s.logger.Error("sequencer failure", zap.Error(err))
	}
}

// Wait blocks until the loop exits. A loop that ended because its context was canceled is not an error.
func (s *Sequencer) Wait() error {
	err := s.eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Current returns the authoritative state.
func (s *Sequencer) Current() *state.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Status returns the current progress.
func (s *Sequencer) Status() Status {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	status.Pending = s.mempool.Len()
	status.Unproven = status.Applied - status.Proven
	return status
}

func (s *Sequencer) setPhase(phase Phase) {
	s.mu.Lock()
	s.status.Phase = phase
	s.mu.Unlock()
	phaseGauge.Set(float64(phase))
}

func (s *Sequencer) run(ctx context.Context) error {
	for {
		s.setPhase(AwaitingTx)
		select {
		case <-ctx.Done():
			return fmt.Errorf("context done: %w", ctx.Err())
		case tx, open := <-s.intake:
			if !open {
				if left := s.mempool.Len(); left > 0 {
					s.logger.Warn("intake closed with transactions in the mempool", zap.Int("pending", left))
				}
				s.logger.Info("intake closed, stopping")
				return nil
			}
			s.mempool.Push(tx)
		}

		s.setPhase(Batching)
		if s.mempool.Len() < s.mempool.Threshold() {
			continue
		}
		if err := s.processBatch(ctx); err != nil {
			return err
		}
	}
}

func (s *Sequencer) processBatch(ctx context.Context) error {
	start := s.clock.Now()
	current := s.Current()
	if root, err := s.roots.CurrentRoot(ctx); err != nil {
		s.logger.Warn("failed to read settlement root", log.TrimmedError(err))
	} else {
		s.logger.Info("current settlement root",
			zap.Stringer("root", root),
			zap.Bool("matches_applied", root == current.Root()),
		)
	}
	batch := s.mempool.DrainValid(current)
	if len(batch) == 0 {
		s.logger.Debug("no valid transactions in the mempool")
		return nil
	}

	s.setPhase(Transitioning)
	chain := s.vm.Chain(current, batch)
	next := chain[len(chain)-1]
	s.mu.Lock()
	s.current = next
	s.status.AppliedRoot = next.Root()
	s.status.Applied += uint64(len(batch))
	s.status.Batches++
	meta := s.metaLocked()
	s.mu.Unlock()
	batchesCnt.Inc()
	batchSize.Observe(float64(len(batch)))
	s.logger.Info("computed L2 state root",
		zap.Stringer("root", next.Root()),
		zap.Int("transactions", len(batch)),
		zap.Uint64("batch", meta.Batches),
	)
	for _, addr := range vm.Touched(batch) {
		s.dirty[addr] = struct{}{}
	}
	if err := s.persist(next, meta); err != nil {
		s.logger.Error("failed to persist batch", zap.Uint64("batch", meta.Batches), zap.Error(err))
	}

	s.setPhase(Proving)
	results, err := s.dispatcher.Dispatch(ctx, chain, batch)
	if err != nil {
		return fmt.Errorf("dispatch proofs for batch %d: %w", meta.Batches, err)
	}

	s.setPhase(Submitting)
	report := s.submitter.Submit(ctx, results)
	s.settle(chain, report)

	took := s.clock.Since(start)
	batchLatency.Observe(took.Seconds())
	s.mu.Lock()
	s.status.LastBatch = start
	s.status.LastBatchTook = took
	meta = s.metaLocked()
	s.mu.Unlock()
	if err := s.persist(next, meta); err != nil {
		s.logger.Error("failed to persist settlement progress", zap.Error(err))
	}
	s.logger.Info("batch done",
		zap.Uint64("batch", meta.Batches),
		zap.Int("transactions", len(batch)),
		zap.Int("submitted", report.Submitted()),
		zap.Duration("took", took),
	)
	return nil
}

// persist writes meta together with every account changed since the last successful commit,
// so the stored accounts always hash to the stored applied root. Accounts stay pending until a
// commit succeeds.
func (s *Sequencer) persist(snap *state.Snapshot, meta *state.Meta) error {
	if s.store == nil {
		clear(s.dirty)
		return nil
	}
	if len(s.dirty) == 0 {
		return s.store.SaveMeta(meta)
	}
	touched := slices.SortedFunc(maps.Keys(s.dirty), types.Address.Compare)
	if err := s.store.Commit(snap, touched, meta); err != nil {
		return fmt.Errorf("commit %d accounts: %w", len(touched), err)
	}
	clear(s.dirty)
	return nil
}

// settle moves the proven root along the settled prefix of the batch. chain[i+1] is the state
// after the i-th transaction, so a prefix of k settled transactions proves chain[k].
func (s *Sequencer) settle(chain []*state.Snapshot, report *settlement.Report) {
	s.mu.Lock()
	s.settleLocked(chain, report)
	s.mu.Unlock()
	s.updateGauges()
}

func (s *Sequencer) settleLocked(chain []*state.Snapshot, report *settlement.Report) {
	if s.status.Diverged {
		return
	}
	prefix := report.ProvenPrefix()
	if prefix > 0 {
		s.status.ProvenRoot = chain[prefix].Root()
		s.status.Proven += uint64(prefix)
	}
	if prefix < len(report.Outcomes) {
		s.status.Diverged = true
		failed := report.Outcomes[prefix]
		s.logger.Error("settled state no longer follows applied state",
			log.ZShortStringer("tx_id", failed.TxID),
			zap.Stringer("status", failed.Status),
			zap.Stringer("proven_root", s.status.ProvenRoot),
			zap.Stringer("applied_root", s.status.AppliedRoot),
			log.TrimmedError(failed.Err),
		)
	}
}

func (s *Sequencer) metaLocked() *state.Meta {
	return &state.Meta{
		AppliedRoot: s.status.AppliedRoot,
		ProvenRoot:  s.status.ProvenRoot,
		Applied:     s.status.Applied,
		Proven:      s.status.Proven,
		Batches:     s.status.Batches,
		Diverged:    s.status.Diverged,
	}
}

func (s *Sequencer) updateGauges() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unprovenGauge.Set(float64(s.status.Applied - s.status.Proven))
	if s.status.Diverged {
		divergedGauge.Set(1)
	} else {
		divergedGauge.Set(0)
	}
}
