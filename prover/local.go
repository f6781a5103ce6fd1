package prover

import (
	"context"
	"errors"
	"fmt"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/state"
)

// ErrInvalidCommitment is returned by VerifyCommitment for proofs that were not produced by Local.
var ErrInvalidCommitment = errors.New("invalid commitment")

// Local is a development prover. Its proof is a hash binding the transaction to the pre and post roots.
// It proves nothing about correctness and exists to run the sequencer without a proving service.
type Local struct{}

// Prove implements Prover.
func (Local) Prove(ctx context.Context, tx *types.SignedTx, pre, post *state.Snapshot) (*types.TxProof, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proof := &types.TxProof{
		TxID:     tx.ID(),
		PreRoot:  pre.Root(),
		PostRoot: post.Root(),
	}
	commitment := commit(proof)
	proof.Data = commitment[:]
	return proof, nil
}

func commit(proof *types.TxProof) types.Hash32 {
	return types.CalcHash32([]byte("trollup-local"), proof.TxID[:], proof.PreRoot[:], proof.PostRoot[:])
}

// VerifyCommitment checks a proof produced by Local.
func VerifyCommitment(proof *types.TxProof) error {
	expected := commit(proof)
	if len(proof.Data) != types.Hash32Length || types.Hash32(proof.Data) != expected {
		return fmt.Errorf("%w: tx %s", ErrInvalidCommitment, proof.TxID.ShortString())
	}
	return nil
}
