package settlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/prover"
)

func TestMemoryChain(t *testing.T) {
	genesis := types.Hash32{1}
	layer := NewMemory(genesis)
	ctx := context.Background()

	root, err := layer.CurrentRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, genesis, root)

	require.NoError(t, layer.SubmitBlock(ctx, []*types.TxProof{
		{PreRoot: genesis, PostRoot: types.Hash32{2}},
		{PreRoot: types.Hash32{2}, PostRoot: types.Hash32{3}},
	}))
	root, err = layer.CurrentRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, types.Hash32{3}, root)
	require.Equal(t, 1, layer.Blocks())

	err = layer.SubmitBlock(ctx, []*types.TxProof{{PreRoot: genesis, PostRoot: types.Hash32{4}}})
	require.ErrorIs(t, err, ErrRootMismatch)
	require.ErrorIs(t, layer.SubmitBlock(ctx, nil), ErrEmptyBlock)

	root, err = layer.CurrentRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, types.Hash32{3}, root, "rejected blocks must not move the root")
}

func TestMemoryBrokenChainKeepsRoot(t *testing.T) {
	layer := NewMemory(types.Hash32{1})
	err := layer.SubmitBlock(context.Background(), []*types.TxProof{
		{PreRoot: types.Hash32{1}, PostRoot: types.Hash32{2}},
		{PreRoot: types.Hash32{5}, PostRoot: types.Hash32{6}},
	})
	require.ErrorIs(t, err, ErrRootMismatch)
	root, err := layer.CurrentRoot(context.Background())
	require.NoError(t, err)
	require.Equal(t, types.Hash32{1}, root)
	require.Zero(t, layer.Blocks())
}

func TestMemoryVerifier(t *testing.T) {
	layer := NewMemory(types.Hash32{1}, WithVerifier(prover.VerifyCommitment))
	err := layer.SubmitBlock(context.Background(), []*types.TxProof{
		{PreRoot: types.Hash32{1}, PostRoot: types.Hash32{2}, Data: []byte{1}},
	})
	require.ErrorIs(t, err, prover.ErrInvalidCommitment)
}

func TestMemoryCanceled(t *testing.T) {
	layer := NewMemory(types.Hash32{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := layer.CurrentRoot(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, layer.SubmitBlock(ctx, []*types.TxProof{{}}), context.Canceled)
}
