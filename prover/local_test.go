package prover

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalProver(t *testing.T) {
	chain, txs := genBatch(1)
	proof, err := Local{}.Prove(context.Background(), txs[0], chain[0], chain[1])
	require.NoError(t, err)
	require.Equal(t, txs[0].ID(), proof.TxID)
	require.Equal(t, chain[0].Root(), proof.PreRoot)
	require.Equal(t, chain[1].Root(), proof.PostRoot)
	require.NoError(t, VerifyCommitment(proof))

	proof.PostRoot = chain[0].Root()
	require.ErrorIs(t, VerifyCommitment(proof), ErrInvalidCommitment)

	proof.Data = proof.Data[:4]
	require.ErrorIs(t, VerifyCommitment(proof), ErrInvalidCommitment)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Local{}.Prove(ctx, txs[0], chain[0], chain[1])
	require.ErrorIs(t, err, context.Canceled)
}
