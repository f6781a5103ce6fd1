package settlement

import (
	"context"

	"github.com/trollup/go-trollup/common/types"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

// Layer is the settlement chain contract that anchors rollup proofs.
type Layer interface {
	// CurrentRoot returns the state root last accepted by the contract.
	CurrentRoot(ctx context.Context) (types.Hash32, error)
	// SubmitBlock submits proofs in one block and waits until the contract accepts or rejects it.
	SubmitBlock(ctx context.Context, proofs []*types.TxProof) error
}
