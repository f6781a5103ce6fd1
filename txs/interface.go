package txs

import (
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/state"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

type transactionValidator interface {
	Validate(*state.Snapshot, *types.SignedTx) error
	Apply(*state.Snapshot, *types.SignedTx) *state.Snapshot
}
