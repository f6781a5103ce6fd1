package sequencer

import (
	"context"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/state"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

type rootReader interface {
	CurrentRoot(ctx context.Context) (types.Hash32, error)
}

type stateStore interface {
	Commit(snap *state.Snapshot, touched []types.Address, meta *state.Meta) error
	SaveMeta(meta *state.Meta) error
}
