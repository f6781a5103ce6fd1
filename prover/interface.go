package prover

import (
	"context"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/state"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

// Prover produces a proof that applying tx to pre yields post.
type Prover interface {
	Prove(ctx context.Context, tx *types.SignedTx, pre, post *state.Snapshot) (*types.TxProof, error)
}
