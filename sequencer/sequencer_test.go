package sequencer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log/logtest"
	"github.com/trollup/go-trollup/prover"
	pmocks "github.com/trollup/go-trollup/prover/mocks"
	"github.com/trollup/go-trollup/sequencer/mocks"
	"github.com/trollup/go-trollup/settlement"
	"github.com/trollup/go-trollup/signing"
	"github.com/trollup/go-trollup/state"
	"github.com/trollup/go-trollup/txs"
	"github.com/trollup/go-trollup/vm"
)

type testConfig struct {
	threshold int
	prover    prover.Prover
	roots     rootReader
	opts      []Opt
}

type tester struct {
	*Sequencer
	intake  chan *types.SignedTx
	layer   *settlement.Memory
	clock   clockwork.FakeClock
	genesis *state.Snapshot
	a, b    *signing.EdSigner
}

func newTester(tb testing.TB, cfg testConfig) *tester {
	a, err := signing.NewEdSigner()
	require.NoError(tb, err)
	b, err := signing.NewEdSigner()
	require.NoError(tb, err)
	verifier, err := signing.NewEdVerifier()
	require.NoError(tb, err)

	genesis := state.NewSnapshot(types.Account{Address: a.Address(), Balance: *uint256.NewInt(100)})
	layer := settlement.NewMemory(genesis.Root(), settlement.WithVerifier(prover.VerifyCommitment))
	if cfg.threshold == 0 {
		cfg.threshold = 1
	}
	if cfg.prover == nil {
		cfg.prover = prover.Local{}
	}
	if cfg.roots == nil {
		cfg.roots = layer
	}
	logger := logtest.New(tb)
	machine := vm.New(verifier, vm.WithLogger(logger))
	tt := &tester{
		intake:  make(chan *types.SignedTx, 16),
		layer:   layer,
		clock:   clockwork.NewFakeClock(),
		genesis: genesis,
		a:       a,
		b:       b,
	}
	opts := append([]Opt{WithLogger(logger), WithClock(tt.clock)}, cfg.opts...)
	tt.Sequencer = New(
		tt.intake,
		txs.NewMempool(machine, txs.WithThreshold(cfg.threshold), txs.WithLogger(logger)),
		machine,
		prover.NewDispatcher(cfg.prover, prover.WithLogger(logger)),
		settlement.NewSubmitter(layer, settlement.WithLogger(logger)),
		cfg.roots,
		genesis,
		opts...,
	)
	return tt
}

// runAll feeds txs, closes the intake and waits until the loop has consumed everything.
func (tt *tester) runAll(tb testing.TB, txs ...*types.SignedTx) {
	tb.Helper()
	tt.Start(context.Background())
	for _, tx := range txs {
		tt.intake <- tx
	}
	close(tt.intake)
	require.NoError(tb, tt.Wait())
}

func transfer(from, to *signing.EdSigner, nonce, value uint64) *types.SignedTx {
	return from.SignTx(types.Tx{
		Kind:      types.Transfer,
		Recipient: to.PublicKey(),
		Nonce:     *uint256.NewInt(nonce),
		Value:     *uint256.NewInt(value),
	})
}

func requireAccount(tb testing.TB, snap *state.Snapshot, addr types.Address, balance, nonce uint64) {
	tb.Helper()
	acc := snap.Get(addr)
	require.Equal(tb, balance, acc.Balance.Uint64(), "balance of %s", addr)
	require.Equal(tb, nonce, acc.Nonce.Uint64(), "nonce of %s", addr)
}

func TestTransferScenario(t *testing.T) {
	tt := newTester(t, testConfig{})
	tt.runAll(t,
		transfer(tt.a, tt.b, 1, 40),
		transfer(tt.a, tt.b, 1, 40),   // nonce too low
		transfer(tt.a, tt.a, 2, 1),    // self transfer
		transfer(tt.a, tt.b, 2, 1000), // insufficient balance
	)

	current := tt.Current()
	requireAccount(t, current, tt.a.Address(), 60, 1)
	requireAccount(t, current, tt.b.Address(), 40, 0)

	status := tt.Status()
	require.Equal(t, AwaitingTx, status.Phase)
	require.Equal(t, current.Root(), status.AppliedRoot)
	require.Equal(t, current.Root(), status.ProvenRoot)
	require.EqualValues(t, 1, status.Applied)
	require.EqualValues(t, 1, status.Proven)
	require.Zero(t, status.Unproven)
	require.False(t, status.Diverged)
	require.EqualValues(t, 1, status.Batches)
	require.Zero(t, status.Pending)
	require.Equal(t, tt.clock.Now(), status.LastBatch)

	root, err := tt.layer.CurrentRoot(context.Background())
	require.NoError(t, err)
	require.Equal(t, current.Root(), root)
	require.Equal(t, 1, tt.layer.Blocks())
}

func TestBatchThreshold(t *testing.T) {
	tt := newTester(t, testConfig{threshold: 2})
	tt.runAll(t,
		transfer(tt.a, tt.b, 1, 10),
		transfer(tt.a, tt.b, 2, 20),
		transfer(tt.a, tt.b, 3, 30),
	)

	requireAccount(t, tt.Current(), tt.a.Address(), 70, 2)
	requireAccount(t, tt.Current(), tt.b.Address(), 30, 0)

	status := tt.Status()
	require.EqualValues(t, 1, status.Batches)
	require.EqualValues(t, 2, status.Applied)
	require.EqualValues(t, 2, status.Proven)
	require.Equal(t, 1, status.Pending, "third transaction waits for the threshold")
	require.Equal(t, 2, tt.layer.Blocks(), "every proof is submitted on its own")
}

func TestProofFailureDiverges(t *testing.T) {
	ctrl := gomock.NewController(t)
	mprover := pmocks.NewMockProver(ctrl)
	tt := newTester(t, testConfig{prover: mprover})

	failing := transfer(tt.a, tt.b, 1, 10)
	gomock.InOrder(
		mprover.EXPECT().Prove(gomock.Any(), failing, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("prover unavailable")),
		mprover.EXPECT().Prove(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(prover.Local{}.Prove),
	)
	tt.runAll(t, failing, transfer(tt.a, tt.b, 2, 20))

	// state is not rolled back
	requireAccount(t, tt.Current(), tt.a.Address(), 70, 2)

	status := tt.Status()
	require.True(t, status.Diverged)
	require.Equal(t, tt.genesis.Root(), status.ProvenRoot)
	require.NotEqual(t, status.AppliedRoot, status.ProvenRoot)
	require.EqualValues(t, 2, status.Applied)
	require.Zero(t, status.Proven)
	require.EqualValues(t, 2, status.Unproven)
	require.Zero(t, tt.layer.Blocks(), "second proof does not chain from the settled root")
}

func TestProvenPrefixWithinBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mprover := pmocks.NewMockProver(ctrl)
	tt := newTester(t, testConfig{prover: mprover, threshold: 2})

	first, second := transfer(tt.a, tt.b, 1, 10), transfer(tt.a, tt.b, 2, 20)
	mprover.EXPECT().Prove(gomock.Any(), first, gomock.Any(), gomock.Any()).DoAndReturn(prover.Local{}.Prove)
	mprover.EXPECT().Prove(gomock.Any(), second, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("out of memory"))
	tt.runAll(t, first, second)

	status := tt.Status()
	require.True(t, status.Diverged)
	require.EqualValues(t, 1, status.Proven)
	require.EqualValues(t, 1, status.Unproven)
	root, err := tt.layer.CurrentRoot(context.Background())
	require.NoError(t, err)
	require.Equal(t, root, status.ProvenRoot)
	require.NotEqual(t, status.AppliedRoot, status.ProvenRoot)
}

func TestSettlementRootUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	roots := mocks.NewMockrootReader(ctrl)
	roots.EXPECT().CurrentRoot(gomock.Any()).Return(types.Hash32{}, errors.New("gateway down"))
	tt := newTester(t, testConfig{roots: roots})

	tt.runAll(t, transfer(tt.a, tt.b, 1, 40))
	status := tt.Status()
	require.EqualValues(t, 1, status.Applied)
	require.EqualValues(t, 1, status.Proven)
}

func TestPersistence(t *testing.T) {
	store, err := state.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	tt := newTester(t, testConfig{opts: []Opt{WithStore(store)}})
	tt.runAll(t, transfer(tt.a, tt.b, 1, 40))

	snap, meta, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, tt.Current().Root(), snap.Root())
	requireAccount(t, snap, tt.b.Address(), 40, 0)
	require.Equal(t, &state.Meta{
		AppliedRoot: snap.Root(),
		ProvenRoot:  snap.Root(),
		Applied:     1,
		Proven:      1,
		Batches:     1,
	}, meta)
}

func TestStoreFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockstateStore(ctrl)
	tt := newTester(t, testConfig{opts: []Opt{WithStore(store)}})

	touched := []types.Address{tt.a.Address(), tt.b.Address()}
	fail := errors.New("disk full")
	gomock.InOrder(
		store.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ *state.Snapshot, addrs []types.Address, meta *state.Meta) error {
				require.ElementsMatch(t, touched, addrs)
				require.EqualValues(t, 1, meta.Applied)
				require.Zero(t, meta.Proven)
				return fail
			}),
		// the failed accounts are committed again together with the settlement progress
		store.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ *state.Snapshot, addrs []types.Address, meta *state.Meta) error {
				require.ElementsMatch(t, touched, addrs)
				require.EqualValues(t, 1, meta.Proven)
				return nil
			}),
		store.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ *state.Snapshot, addrs []types.Address, meta *state.Meta) error {
				require.ElementsMatch(t, touched, addrs)
				require.EqualValues(t, 2, meta.Applied)
				return nil
			}),
		store.EXPECT().SaveMeta(gomock.Any()).DoAndReturn(func(meta *state.Meta) error {
			require.EqualValues(t, 2, meta.Proven)
			return fail
		}),
	)

	tt.runAll(t, transfer(tt.a, tt.b, 1, 40), transfer(tt.b, tt.a, 1, 10))
	require.EqualValues(t, 2, tt.Status().Applied)
}

type flakyStore struct {
	*state.Store
	failures int
}

func (fs *flakyStore) Commit(snap *state.Snapshot, touched []types.Address, meta *state.Meta) error {
	if fs.failures > 0 {
		fs.failures--
		return errors.New("i/o error")
	}
	return fs.Store.Commit(snap, touched, meta)
}

func TestStoreRecoversAfterFailedCommit(t *testing.T) {
	// two batches issue up to four commits, the last one always succeeds
	for failures := 1; failures <= 3; failures++ {
		t.Run(fmt.Sprintf("failures %d", failures), func(t *testing.T) {
			db, err := state.OpenInMemory()
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, db.Close()) })
			store := &flakyStore{Store: db, failures: failures}

			c, err := signing.NewEdSigner()
			require.NoError(t, err)
			tt := newTester(t, testConfig{opts: []Opt{WithStore(store)}})
			tt.runAll(t, transfer(tt.a, tt.b, 1, 40), transfer(tt.a, c, 2, 10))
			require.Zero(t, store.failures)

			snap, meta, err := db.Load()
			require.NoError(t, err)
			require.Equal(t, tt.Current().Root(), snap.Root())
			requireAccount(t, snap, tt.a.Address(), 50, 2)
			requireAccount(t, snap, tt.b.Address(), 40, 0)
			requireAccount(t, snap, c.Address(), 10, 0)
			require.EqualValues(t, 2, meta.Applied)
			require.EqualValues(t, 2, meta.Proven)
			require.Equal(t, snap.Root(), meta.AppliedRoot)
		})
	}
}

func TestRestoreFromMeta(t *testing.T) {
	meta := &state.Meta{
		ProvenRoot: types.Hash32{1},
		Applied:    10,
		Proven:     7,
		Batches:    4,
		Diverged:   true,
	}
	tt := newTester(t, testConfig{opts: []Opt{WithMeta(meta)}})
	status := tt.Status()
	require.Equal(t, tt.genesis.Root(), status.AppliedRoot)
	require.Equal(t, meta.ProvenRoot, status.ProvenRoot)
	require.EqualValues(t, 3, status.Unproven)
	require.EqualValues(t, 4, status.Batches)
	require.True(t, status.Diverged)
}

func TestStartStop(t *testing.T) {
	tt := newTester(t, testConfig{})
	tt.Stop() // not started

	tt.Start(context.Background())
	tt.intake <- transfer(tt.a, tt.b, 1, 40)
	require.Eventually(t, func() bool {
		return tt.Status().Applied == 1
	}, time.Second, 10*time.Millisecond)

	tt.Stop()
	require.NoError(t, tt.Wait())
}

func TestPhaseString(t *testing.T) {
	for phase, expected := range map[Phase]string{
		AwaitingTx:    "awaiting_tx",
		Batching:      "batching",
		Transitioning: "transitioning",
		Proving:       "proving",
		Submitting:    "submitting",
		Phase(42):     "unknown",
	} {
		require.Equal(t, expected, phase.String())
	}
}
