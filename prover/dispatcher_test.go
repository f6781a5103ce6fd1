package prover

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/prover/mocks"
	"github.com/trollup/go-trollup/state"
)

func genBatch(n int) ([]*state.Snapshot, []*types.SignedTx) {
	chain := []*state.Snapshot{state.NewSnapshot()}
	var txs []*types.SignedTx
	for i := 0; i < n; i++ {
		tx := &types.SignedTx{Tx: types.Tx{Nonce: *uint256.NewInt(uint64(i + 1))}}
		tx.Recipient[0] = byte(i + 1)
		txs = append(txs, tx)
		var acc types.Account
		acc.Address[0] = byte(i + 1)
		acc.Balance.SetUint64(uint64(i + 1))
		chain = append(chain, chain[i].Update(acc))
	}
	for _, snap := range chain {
		// roots are computed up front so concurrent matchers only read them
		snap.Root()
	}
	return chain, txs
}

func proofFor(tx *types.SignedTx, pre, post *state.Snapshot) *types.TxProof {
	return &types.TxProof{TxID: tx.ID(), PreRoot: pre.Root(), PostRoot: post.Root()}
}

func newDispatcher(t *testing.T, cfg Config) (*Dispatcher, *mocks.MockProver) {
	prover := mocks.NewMockProver(gomock.NewController(t))
	return NewDispatcher(prover, WithConfig(cfg), WithLogger(zaptest.NewLogger(t))), prover
}

func TestDispatchPreservesOrder(t *testing.T) {
	d, prover := newDispatcher(t, Config{Parallelism: 4})
	chain, txs := genBatch(3)

	secondDone := make(chan struct{})
	for i, tx := range txs {
		prover.EXPECT().Prove(gomock.Any(), tx, chain[i], chain[i+1]).DoAndReturn(
			func(_ context.Context, tx *types.SignedTx, pre, post *state.Snapshot) (*types.TxProof, error) {
				switch i {
				case 0:
					// the first proof completes only after the second one
					<-secondDone
				case 1:
					defer close(secondDone)
				}
				return proofFor(tx, pre, post), nil
			})
	}

	results, err := d.Dispatch(context.Background(), chain, txs)
	require.NoError(t, err)
	require.Len(t, results, len(txs))
	for i, rst := range results {
		require.NoError(t, rst.Err)
		require.Same(t, txs[i], rst.Tx)
		require.Equal(t, proofFor(txs[i], chain[i], chain[i+1]), rst.Proof)
	}
}

func TestDispatchPartialFailure(t *testing.T) {
	d, prover := newDispatcher(t, Config{Parallelism: 1})
	chain, txs := genBatch(3)
	cause := errors.New("prover crashed")
	for i, tx := range txs {
		call := prover.EXPECT().Prove(gomock.Any(), tx, chain[i], chain[i+1])
		if i == 1 {
			call.Return(nil, cause)
		} else {
			call.Return(proofFor(tx, chain[i], chain[i+1]), nil)
		}
	}

	results, err := d.Dispatch(context.Background(), chain, txs)
	require.NoError(t, err)
	require.NotNil(t, results[0].Proof)
	require.ErrorIs(t, results[1].Err, ErrProof)
	require.ErrorIs(t, results[1].Err, cause)
	require.Nil(t, results[1].Proof)
	require.NotNil(t, results[2].Proof)
}

func TestDispatchNilProof(t *testing.T) {
	d, prover := newDispatcher(t, Config{})
	chain, txs := genBatch(1)
	prover.EXPECT().Prove(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	results, err := d.Dispatch(context.Background(), chain, txs)
	require.NoError(t, err)
	require.ErrorIs(t, results[0].Err, ErrProof)
}

func TestDispatchTimeout(t *testing.T) {
	d, prover := newDispatcher(t, Config{Timeout: 10 * time.Millisecond})
	chain, txs := genBatch(1)
	prover.EXPECT().Prove(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *types.SignedTx, _, _ *state.Snapshot) (*types.TxProof, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	results, err := d.Dispatch(context.Background(), chain, txs)
	require.NoError(t, err)
	require.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
}

func TestDispatchChainMismatch(t *testing.T) {
	d, _ := newDispatcher(t, Config{})
	chain, txs := genBatch(2)
	_, err := d.Dispatch(context.Background(), chain[:2], txs)
	require.ErrorIs(t, err, ErrChainLength)

	results, err := d.Dispatch(context.Background(), chain[:1], nil)
	require.NoError(t, err)
	require.Empty(t, results)
}
